package services

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"reporthub-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReportFilter selects a window of the report catalog. Zero values for
// Page/PageSize mean "use the default"; explicit negative values are
// rejected before the store is touched.
type ReportFilter struct {
	Page       int
	PageSize   int
	CategoryID string
	Search     string
	SortBy     string
	SortOrder  string
}

type ReportInput struct {
	Title       string
	Description *string
	CategoryID  *string
	PdfURL      string
	Source      *string
	PublishedAt *time.Time
}

// ReportPatch updates only the fields that are non-nil. An empty string
// for a nullable field clears it.
type ReportPatch struct {
	Title       *string
	Description *string
	CategoryID  *string
	PdfURL      *string
	Source      *string
	PublishedAt *time.Time
}

var reportSortColumns = map[string]string{
	"created_at":     "created_at",
	"published_at":   "published_at",
	"view_count":     "view_count",
	"download_count": "download_count",
}

const reportSelectColumns = `
r.id, r.title, r.description, r.category_id, r.pdf_url, r.source, r.published_at,
r.view_count, r.download_count, r.created_by, r.created_at, r.updated_at,
c.id AS category_row_id, c.name AS category_name, c.description AS category_description,
c.created_at AS category_created_at, c.updated_at AS category_updated_at`

type reportRow struct {
	models.Report
	CategoryRowID       *string    `db:"category_row_id"`
	CategoryName        *string    `db:"category_name"`
	CategoryDescription *string    `db:"category_description"`
	CategoryCreatedAt   *time.Time `db:"category_created_at"`
	CategoryUpdatedAt   *time.Time `db:"category_updated_at"`
}

func (row reportRow) toReport() models.Report {
	report := row.Report
	if row.CategoryRowID != nil {
		report.Category = &models.Category{
			ID:          *row.CategoryRowID,
			Name:        deref(row.CategoryName),
			Description: row.CategoryDescription,
		}
		if row.CategoryCreatedAt != nil {
			report.Category.CreatedAt = *row.CategoryCreatedAt
		}
		if row.CategoryUpdatedAt != nil {
			report.Category.UpdatedAt = *row.CategoryUpdatedAt
		}
	}
	return report
}

// ListReports returns one page of the filtered, sorted catalog plus the
// total size of the filtered set. Filters are conjunctive; the search
// term is a case-insensitive substring match on title or description.
func ListReports(db *sqlx.DB, filter ReportFilter) ([]models.Report, int, error) {
	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 10
	}
	if page < 1 || pageSize < 1 {
		return nil, 0, ErrBadRequest("page and pageSize must be positive")
	}
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortColumn, ok := reportSortColumns[sortBy]
	if !ok {
		return nil, 0, ErrBadRequest("unsupported sort field: " + sortBy)
	}
	direction := "DESC"
	switch strings.ToLower(filter.SortOrder) {
	case "", "desc":
	case "asc":
		direction = "ASC"
	default:
		return nil, 0, ErrBadRequest("sort order must be asc or desc")
	}

	conditions := []string{}
	args := []interface{}{}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("r.category_id = $%d", len(args)))
	}
	if term := CleanSearchTerm(filter.Search); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		conditions = append(conditions, fmt.Sprintf("(lower(r.title) LIKE $%d OR lower(r.description) LIKE $%d)", len(args), len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := db.Get(&total, "SELECT count(*) FROM reports r "+where, args...); err != nil {
		return nil, 0, WrapError(err, "count reports")
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
SELECT `+reportSelectColumns+`
FROM reports r
LEFT JOIN categories c ON c.id = r.category_id
%s
ORDER BY r.%s %s
LIMIT $%d OFFSET $%d`, where, sortColumn, direction, len(args)-1, len(args))
	rows := []reportRow{}
	if err := db.Select(&rows, query, args...); err != nil {
		return nil, 0, WrapError(err, "list reports")
	}
	reports := make([]models.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, row.toReport())
	}
	return reports, total, nil
}

// GetReport returns the report with its category snapshot, or nil when
// no row matches the identifier.
func GetReport(db *sqlx.DB, id string) (*models.Report, error) {
	row := reportRow{}
	err := db.Get(&row, `
SELECT `+reportSelectColumns+`
FROM reports r
LEFT JOIN categories c ON c.id = r.category_id
WHERE r.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "get report")
	}
	report := row.toReport()
	return &report, nil
}

func CreateReport(db *sqlx.DB, input ReportInput, createdBy *string) (*models.Report, error) {
	if err := validateReportInput(input); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := db.Exec(`
INSERT INTO reports (id, title, description, category_id, pdf_url, source, published_at, view_count, download_count, created_by, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,0,0,$8,$9,$9)
`, id, strings.TrimSpace(input.Title), trimPtr(input.Description), trimPtr(input.CategoryID),
		strings.TrimSpace(input.PdfURL), trimPtr(input.Source), input.PublishedAt, createdBy, now)
	if err != nil {
		return nil, WrapError(err, "insert report")
	}
	return GetReport(db, id)
}

// CreateReportsBatch inserts every row inside one transaction: either
// all rows are committed or none are. Each row is stamped with the
// caller's identity.
func CreateReportsBatch(db *sqlx.DB, inputs []ReportInput, createdBy *string) ([]models.Report, error) {
	for i, input := range inputs {
		if err := validateReportInput(input); err != nil {
			return nil, ErrBadRequest(fmt.Sprintf("row %d: %s", i+1, err.Error()))
		}
	}
	if len(inputs) == 0 {
		return []models.Report{}, nil
	}
	tx, err := db.Beginx()
	if err != nil {
		return nil, WrapError(err, "begin batch insert")
	}
	now := time.Now().UTC()
	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		id := uuid.NewString()
		_, err := tx.Exec(`
INSERT INTO reports (id, title, description, category_id, pdf_url, source, published_at, view_count, download_count, created_by, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,0,0,$8,$9,$9)
`, id, strings.TrimSpace(input.Title), trimPtr(input.Description), trimPtr(input.CategoryID),
			strings.TrimSpace(input.PdfURL), trimPtr(input.Source), input.PublishedAt, createdBy, now)
		if err != nil {
			_ = tx.Rollback()
			return nil, WrapError(err, "insert report batch")
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(err, "commit batch insert")
	}
	reports := make([]models.Report, 0, len(ids))
	for _, id := range ids {
		report, err := GetReport(db, id)
		if err != nil {
			return nil, err
		}
		if report != nil {
			reports = append(reports, *report)
		}
	}
	return reports, nil
}

func UpdateReport(db *sqlx.DB, id string, patch ReportPatch) error {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return ErrBadRequest("title is required")
		}
		add("title", title)
	}
	if patch.Description != nil {
		add("description", nullIfEmpty(*patch.Description))
	}
	if patch.CategoryID != nil {
		add("category_id", nullIfEmpty(*patch.CategoryID))
	}
	if patch.PdfURL != nil {
		pdfURL := strings.TrimSpace(*patch.PdfURL)
		if pdfURL == "" {
			return ErrBadRequest("pdf_url is required")
		}
		add("pdf_url", pdfURL)
	}
	if patch.Source != nil {
		add("source", nullIfEmpty(*patch.Source))
	}
	if patch.PublishedAt != nil {
		add("published_at", *patch.PublishedAt)
	}
	if len(sets) == 0 {
		return ErrBadRequest("no fields to update")
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)
	res, err := db.Exec(fmt.Sprintf("UPDATE reports SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)), args...)
	if err != nil {
		return WrapError(err, "update report")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("report not found")
	}
	return nil
}

func DeleteReport(db *sqlx.DB, id string) error {
	res, err := db.Exec(`DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return WrapError(err, "delete report")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("report not found")
	}
	return nil
}

// DeleteReportsBatch removes every report whose id is in the set.
// Unknown ids are a no-op, not an error.
func DeleteReportsBatch(db *sqlx.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM reports WHERE id IN (?)`, ids)
	if err != nil {
		return WrapError(err, "build batch delete")
	}
	if _, err := db.Exec(db.Rebind(query), args...); err != nil {
		return WrapError(err, "delete report batch")
	}
	return nil
}

func IncrementViewCount(db *sqlx.DB, id string) error {
	return incrementCounter(db, id, "view_count")
}

func IncrementDownloadCount(db *sqlx.DB, id string) error {
	return incrementCounter(db, id, "download_count")
}

// incrementCounter adds exactly one to the counter column in a single
// atomic statement, so concurrent increments never lose an update.
func incrementCounter(db *sqlx.DB, id, column string) error {
	res, err := db.Exec(fmt.Sprintf(`UPDATE reports SET %s = %s + 1, updated_at = $1 WHERE id = $2`, column, column), time.Now().UTC(), id)
	if err != nil {
		return WrapError(err, "increment "+column)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound("report not found")
	}
	return nil
}

func validateReportInput(input ReportInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrBadRequest("title is required")
	}
	if strings.TrimSpace(input.PdfURL) == "" {
		return ErrBadRequest("pdf_url is required")
	}
	return nil
}

var whitespaceRE = regexp.MustCompile(`\s+`)

func CleanSearchTerm(term string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(term), " ")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return nullIfEmpty(*value)
}

func nullIfEmpty(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
