package services

import (
	"fmt"
	"time"

	"reporthub-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LogDownload appends one download event. Anonymous downloads are
// logged with a NULL user. This is an event log, not a flag: repeated
// downloads each produce a new row.
func LogDownload(db *sqlx.DB, reportID string, userID *string) error {
	_, err := db.Exec(`
INSERT INTO download_logs (id, report_id, user_id, downloaded_at)
VALUES ($1,$2,$3,$4)
`, uuid.NewString(), reportID, userID, time.Now().UTC())
	return WrapError(err, "insert download log")
}

type downloadLogRow struct {
	models.DownloadLog
	ReportRowID    *string `db:"report_row_id"`
	ReportTitle    *string `db:"report_title"`
	ReportPdfURL   *string `db:"report_pdf_url"`
	ReportCategory *string `db:"report_category_id"`
}

// ListUserDownloads returns one page of a user's download history,
// newest first, with a report snapshot attached to each entry.
func ListUserDownloads(db *sqlx.DB, userID string, page, pageSize int) ([]models.DownloadLog, int, error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := db.Get(&total, `SELECT count(*) FROM download_logs WHERE user_id = $1`, userID); err != nil {
		return nil, 0, WrapError(err, "count user downloads")
	}
	rows := []downloadLogRow{}
	err = db.Select(&rows, `
SELECT d.id, d.report_id, d.user_id, d.downloaded_at,
       r.id AS report_row_id, r.title AS report_title, r.pdf_url AS report_pdf_url, r.category_id AS report_category_id
FROM download_logs d
LEFT JOIN reports r ON r.id = d.report_id
WHERE d.user_id = $1
ORDER BY d.downloaded_at DESC
LIMIT $2 OFFSET $3`, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, WrapError(err, "list user downloads")
	}
	logs := make([]models.DownloadLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toLog())
	}
	return logs, total, nil
}

// ListReportDownloads returns one page of a report's download events,
// newest first.
func ListReportDownloads(db *sqlx.DB, reportID string, page, pageSize int) ([]models.DownloadLog, int, error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := db.Get(&total, `SELECT count(*) FROM download_logs WHERE report_id = $1`, reportID); err != nil {
		return nil, 0, WrapError(err, "count report downloads")
	}
	logs := []models.DownloadLog{}
	err = db.Select(&logs, `
SELECT id, report_id, user_id, downloaded_at
FROM download_logs
WHERE report_id = $1
ORDER BY downloaded_at DESC
LIMIT $2 OFFSET $3`, reportID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, WrapError(err, "list report downloads")
	}
	return logs, total, nil
}

func (row downloadLogRow) toLog() models.DownloadLog {
	entry := row.DownloadLog
	if row.ReportRowID != nil {
		entry.Report = &models.Report{
			ID:         *row.ReportRowID,
			Title:      deref(row.ReportTitle),
			PdfURL:     deref(row.ReportPdfURL),
			CategoryID: row.ReportCategory,
		}
	}
	return entry
}

func normalizePage(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}
	if page < 1 || pageSize < 1 {
		return 0, 0, ErrBadRequest(fmt.Sprintf("invalid page window: page=%d pageSize=%d", page, pageSize))
	}
	return page, pageSize, nil
}
