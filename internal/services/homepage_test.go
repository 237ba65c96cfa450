package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHomepageConfig(t *testing.T, db *sqlx.DB, mission string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
INSERT INTO homepage_config (id, mission, features, advantages, updated_at)
VALUES ($1,$2,'[]','[]',$3)`, id, nullIfEmpty(mission), time.Now().UTC())
	require.NoError(t, err)
	return id
}

func TestGetHomepageConfigEmptyIsNil(t *testing.T) {
	db := openTestDB(t)
	config, err := GetHomepageConfig(db)
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestUpdateHomepageConfig(t *testing.T) {
	db := openTestDB(t)
	id := seedHomepageConfig(t, db, "old mission")

	mission := "Independent research for everyone"
	features := []string{"Daily notes", "  ", "PDF archive"}
	require.NoError(t, UpdateHomepageConfig(db, id, HomepagePatch{
		Mission:  &mission,
		Features: &features,
	}))

	config, err := GetHomepageConfig(db)
	require.NoError(t, err)
	require.NotNil(t, config)
	require.NotNil(t, config.Mission)
	assert.Equal(t, "Independent research for everyone", *config.Mission)
	assert.Equal(t, []string{"Daily notes", "PDF archive"}, DecodeStringList(config.Features))
	assert.Equal(t, []string{}, DecodeStringList(config.Advantages))
}

func TestUpdateHomepageConfigErrors(t *testing.T) {
	db := openTestDB(t)
	id := seedHomepageConfig(t, db, "")

	var svcErr ServiceError
	err := UpdateHomepageConfig(db, id, HomepagePatch{})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	mission := "x"
	err = UpdateHomepageConfig(db, "missing", HomepagePatch{Mission: &mission})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}
