package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProfileStartsAsUser(t *testing.T) {
	db := openTestDB(t)

	email := "ana@example.com"
	profile, err := CreateProfile(db, uuid.NewString(), "ana_p", &email, "hash")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, profile.Role)
	require.NotNil(t, profile.Email)
	assert.Equal(t, "ana@example.com", *profile.Email)
}

func TestCreateProfileRejectsBadUsernames(t *testing.T) {
	db := openTestDB(t)

	var svcErr ServiceError
	_, err := CreateProfile(db, uuid.NewString(), "ana p", nil, "hash")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	_, err = CreateProfile(db, uuid.NewString(), "", nil, "hash")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestCreateProfileUsernameUniqueIgnoringCase(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateProfile(db, uuid.NewString(), "Analyst", nil, "hash")
	require.NoError(t, err)

	var svcErr ServiceError
	_, err = CreateProfile(db, uuid.NewString(), "analyst", nil, "hash")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestUpdateUserRole(t *testing.T) {
	db := openTestDB(t)
	profile := seedProfile(t, db, "ana", RoleUser)

	require.NoError(t, UpdateUserRole(db, profile.ID, "ADMIN"))

	loaded, err := GetProfile(db, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, loaded.Role)

	var svcErr ServiceError
	err = UpdateUserRole(db, profile.ID, "owner")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	err = UpdateUserRole(db, "missing", RoleUser)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}

func TestUpdateProfileEmailAndPassword(t *testing.T) {
	db := openTestDB(t)
	profile := seedProfile(t, db, "ana", RoleUser)

	email := " ana@example.com "
	require.NoError(t, UpdateProfileEmail(db, profile.ID, &email))
	require.NoError(t, UpdatePasswordHash(db, profile.ID, "newhash"))

	loaded, err := GetProfile(db, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Email)
	assert.Equal(t, "ana@example.com", *loaded.Email)
	assert.Equal(t, "newhash", loaded.PasswordHash)

	require.NoError(t, UpdateProfileEmail(db, profile.ID, nil))
	loaded, err = GetProfile(db, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Email)
}

func TestFindProfileByUsernameIgnoresCase(t *testing.T) {
	db := openTestDB(t)
	seedProfile(t, db, "Analyst", RoleUser)

	profile, err := FindProfileByUsername(db, "  analyst ")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Analyst", profile.Username)

	missing, err := FindProfileByUsername(db, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetProfileMissingIsNil(t *testing.T) {
	db := openTestDB(t)
	profile, err := GetProfile(db, "missing")
	require.NoError(t, err)
	assert.Nil(t, profile)
}
