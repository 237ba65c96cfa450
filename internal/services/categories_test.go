package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	db := openTestDB(t)

	description := "top-down research"
	category, err := CreateCategory(db, CategoryInput{Name: "  Macro  ", Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Macro", category.Name)
	require.NotNil(t, category.Description)
	assert.Equal(t, "top-down research", *category.Description)

	listed, err := ListCategories(db)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, category.ID, listed[0].ID)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateCategory(db, CategoryInput{Name: "   "})
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestUpdateCategory(t *testing.T) {
	db := openTestDB(t)
	category := seedCategory(t, db, "Macro")

	name := "Macro Research"
	require.NoError(t, UpdateCategory(db, category.ID, CategoryPatch{Name: &name}))

	listed, err := ListCategories(db)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Macro Research", listed[0].Name)

	var svcErr ServiceError
	err = UpdateCategory(db, category.ID, CategoryPatch{})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	err = UpdateCategory(db, "missing", CategoryPatch{Name: &name})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}

func TestDeleteCategoryDetachesReports(t *testing.T) {
	db := openTestDB(t)
	category := seedCategory(t, db, "Macro")
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id := seedReport(t, db, "Macro Monthly", "", &category.ID, base)

	require.NoError(t, DeleteCategory(db, category.ID))

	report, err := GetReport(db, id)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Nil(t, report.CategoryID)
	assert.Nil(t, report.Category)

	var svcErr ServiceError
	err = DeleteCategory(db, category.ID)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}
