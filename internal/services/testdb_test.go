package services

import (
	"testing"
	"time"

	"reporthub-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE profiles (
  id            TEXT PRIMARY KEY,
  username      TEXT NOT NULL UNIQUE,
  email         TEXT,
  password_hash TEXT NOT NULL,
  role          TEXT NOT NULL DEFAULT 'user',
  created_at    TIMESTAMP NOT NULL,
  updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE categories (
  id          TEXT PRIMARY KEY,
  name        TEXT NOT NULL,
  description TEXT,
  created_at  TIMESTAMP NOT NULL,
  updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE reports (
  id             TEXT PRIMARY KEY,
  title          TEXT NOT NULL,
  description    TEXT,
  category_id    TEXT REFERENCES categories(id),
  pdf_url        TEXT NOT NULL,
  source         TEXT,
  published_at   TIMESTAMP,
  view_count     INTEGER NOT NULL DEFAULT 0,
  download_count INTEGER NOT NULL DEFAULT 0,
  created_by     TEXT,
  created_at     TIMESTAMP NOT NULL,
  updated_at     TIMESTAMP NOT NULL
);

CREATE TABLE download_logs (
  id            TEXT PRIMARY KEY,
  report_id     TEXT NOT NULL,
  user_id       TEXT,
  downloaded_at TIMESTAMP NOT NULL
);

CREATE TABLE homepage_config (
  id         TEXT PRIMARY KEY,
  mission    TEXT,
  features   TEXT NOT NULL DEFAULT '[]',
  advantages TEXT NOT NULL DEFAULT '[]',
  updated_at TIMESTAMP NOT NULL
);

CREATE TABLE server_metric_samples (
  id                        TEXT PRIMARY KEY,
  captured_at               TIMESTAMP NOT NULL,
  process_rss_bytes         INTEGER NOT NULL,
  system_memory_total_bytes INTEGER NOT NULL,
  system_memory_used_bytes  INTEGER NOT NULL,
  disk_total_bytes          INTEGER NOT NULL,
  disk_used_bytes           INTEGER NOT NULL,
  process_cpu_load          REAL NOT NULL,
  system_cpu_load           REAL NOT NULL
);
`

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCategory(t *testing.T, db *sqlx.DB, name string) models.Category {
	t.Helper()
	now := time.Now().UTC()
	category := models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.Exec(`
INSERT INTO categories (id, name, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)`, category.ID, category.Name, nil, now, now)
	require.NoError(t, err)
	return category
}

func seedReport(t *testing.T, db *sqlx.DB, title, description string, categoryID *string, createdAt time.Time) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
INSERT INTO reports (id, title, description, category_id, pdf_url, source, published_at, view_count, download_count, created_by, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,0,0,$8,$9,$10)`,
		id, title, nullIfEmpty(description), categoryID, "https://cdn.example.com/"+id+".pdf", nil, nil, nil, createdAt, createdAt)
	require.NoError(t, err)
	return id
}

func seedProfile(t *testing.T, db *sqlx.DB, username, role string) models.Profile {
	t.Helper()
	now := time.Now().UTC()
	profile := models.Profile{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := db.Exec(`
INSERT INTO profiles (id, username, email, password_hash, role, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		profile.ID, profile.Username, nil, profile.PasswordHash, profile.Role, now, now)
	require.NoError(t, err)
	return profile
}
