package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"reporthub-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type HomepagePatch struct {
	Mission    *string
	Features   *[]string
	Advantages *[]string
}

// GetHomepageConfig reads the most recently updated row; the table is a
// singleton in practice. Nil when no row exists yet.
func GetHomepageConfig(db *sqlx.DB) (*models.HomepageConfig, error) {
	config := models.HomepageConfig{}
	err := db.Get(&config, `
SELECT id, mission, features, advantages, updated_at
FROM homepage_config
ORDER BY updated_at DESC
LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get homepage config")
	}
	return &config, nil
}

func UpdateHomepageConfig(db *sqlx.DB, id string, patch HomepagePatch) error {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Mission != nil {
		add("mission", nullIfEmpty(*patch.Mission))
	}
	if patch.Features != nil {
		encoded, err := encodeStringList(*patch.Features)
		if err != nil {
			return err
		}
		add("features", encoded)
	}
	if patch.Advantages != nil {
		encoded, err := encodeStringList(*patch.Advantages)
		if err != nil {
			return err
		}
		add("advantages", encoded)
	}
	if len(sets) == 0 {
		return ErrBadRequest("no fields to update")
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)
	res, err := db.Exec(fmt.Sprintf("UPDATE homepage_config SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)), args...)
	if err != nil {
		return WrapError(err, "update homepage config")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("homepage config not found")
	}
	return nil
}

// encodeStringList keeps list order and drops blank entries.
func encodeStringList(items []string) (string, error) {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if value := strings.TrimSpace(item); value != "" {
			cleaned = append(cleaned, value)
		}
	}
	encoded, err := json.Marshal(cleaned)
	if err != nil {
		return "", WrapError(err, "encode list")
	}
	return string(encoded), nil
}

// DecodeStringList is the read-side counterpart used by the handlers.
func DecodeStringList(raw []byte) []string {
	items := []string{}
	_ = json.Unmarshal(raw, &items)
	return items
}
