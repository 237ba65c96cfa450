package services

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"reporthub-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var usernameRE = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// GetProfile returns nil when no profile matches the identifier.
func GetProfile(db *sqlx.DB, id string) (*models.Profile, error) {
	profile := models.Profile{}
	err := db.Get(&profile, `
SELECT id, username, email, password_hash, role, created_at, updated_at
FROM profiles
WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get profile")
	}
	return &profile, nil
}

func ListProfiles(db *sqlx.DB) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := db.Select(&profiles, `
SELECT id, username, email, password_hash, role, created_at, updated_at
FROM profiles
ORDER BY created_at DESC`)
	if err != nil {
		return nil, WrapError(err, "list profiles")
	}
	return profiles, nil
}

// CreateProfile provisions the account row. The role always starts as
// "user"; promotion happens through UpdateUserRole only.
func CreateProfile(db *sqlx.DB, id, username string, email *string, passwordHash string) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	if !usernameRE.MatchString(username) {
		return nil, ErrBadRequest("username may only contain letters, digits and underscores")
	}
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM profiles WHERE lower(username) = $1)`, strings.ToLower(username)); err != nil {
		return nil, WrapError(err, "check username")
	}
	if exists {
		return nil, ErrBadRequest("username already taken")
	}
	profile := models.Profile{
		ID:           id,
		Username:     username,
		Email:        trimPtr(email),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	profile.UpdatedAt = profile.CreatedAt
	_, err := db.Exec(`
INSERT INTO profiles (id, username, email, password_hash, role, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
`, profile.ID, profile.Username, profile.Email, profile.PasswordHash, profile.Role, profile.CreatedAt)
	if err != nil {
		return nil, WrapError(err, "insert profile")
	}
	return &profile, nil
}

// UpdateUserRole promotes or demotes a profile. Authorization (only an
// admin may call this) is enforced at the route level.
func UpdateUserRole(db *sqlx.DB, id, role string) error {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != RoleUser && role != RoleAdmin {
		return ErrBadRequest("role must be user or admin")
	}
	res, err := db.Exec(`UPDATE profiles SET role = $1, updated_at = $2 WHERE id = $3`, role, time.Now().UTC(), id)
	if err != nil {
		return WrapError(err, "update role")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("profile not found")
	}
	return nil
}

// UpdateProfileEmail is the one self-service profile edit.
func UpdateProfileEmail(db *sqlx.DB, id string, email *string) error {
	res, err := db.Exec(`UPDATE profiles SET email = $1, updated_at = $2 WHERE id = $3`, trimPtr(email), time.Now().UTC(), id)
	if err != nil {
		return WrapError(err, "update email")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("profile not found")
	}
	return nil
}

func UpdatePasswordHash(db *sqlx.DB, id, passwordHash string) error {
	res, err := db.Exec(`UPDATE profiles SET password_hash = $1, updated_at = $2 WHERE id = $3`, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return WrapError(err, "update password")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("profile not found")
	}
	return nil
}

// FindProfileByUsername is used by login; nil when unknown.
func FindProfileByUsername(db *sqlx.DB, username string) (*models.Profile, error) {
	profile := models.Profile{}
	err := db.Get(&profile, `
SELECT id, username, email, password_hash, role, created_at, updated_at
FROM profiles
WHERE lower(username) = $1`, strings.ToLower(strings.TrimSpace(username)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "find profile")
	}
	return &profile, nil
}
