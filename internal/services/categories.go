package services

import (
	"fmt"
	"strings"
	"time"

	"reporthub-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategoryInput struct {
	Name        string
	Description *string
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

func ListCategories(db *sqlx.DB) ([]models.Category, error) {
	categories := []models.Category{}
	err := db.Select(&categories, `
SELECT id, name, description, created_at, updated_at
FROM categories
ORDER BY created_at DESC`)
	if err != nil {
		return nil, WrapError(err, "list categories")
	}
	return categories, nil
}

func CreateCategory(db *sqlx.DB, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBadRequest("name is required")
	}
	category := models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: trimPtr(input.Description),
		CreatedAt:   time.Now().UTC(),
	}
	category.UpdatedAt = category.CreatedAt
	_, err := db.Exec(`
INSERT INTO categories (id, name, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
`, category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return nil, WrapError(err, "insert category")
	}
	return &category, nil
}

func UpdateCategory(db *sqlx.DB, id string, patch CategoryPatch) error {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrBadRequest("name is required")
		}
		add("name", name)
	}
	if patch.Description != nil {
		add("description", nullIfEmpty(*patch.Description))
	}
	if len(sets) == 0 {
		return ErrBadRequest("no fields to update")
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)
	res, err := db.Exec(fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)), args...)
	if err != nil {
		return WrapError(err, "update category")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("category not found")
	}
	return nil
}

// DeleteCategory removes the category and detaches any reports that
// still reference it, in one transaction. Reports are never deleted by
// a category delete.
func DeleteCategory(db *sqlx.DB, id string) error {
	tx, err := db.Beginx()
	if err != nil {
		return WrapError(err, "begin category delete")
	}
	if _, err := tx.Exec(`UPDATE reports SET category_id = NULL WHERE category_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return WrapError(err, "detach category reports")
	}
	res, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return WrapError(err, "delete category")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		_ = tx.Rollback()
		return ErrNotFound("category not found")
	}
	if err := tx.Commit(); err != nil {
		return WrapError(err, "commit category delete")
	}
	return nil
}
