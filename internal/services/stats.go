package services

import "github.com/jmoiron/sqlx"

type Statistics struct {
	TotalReports   int `json:"totalReports"`
	TotalDownloads int `json:"totalDownloads"`
	TotalUsers     int `json:"totalUsers"`
	TotalViews     int `json:"totalViews"`
}

// GetStatistics issues four independent counting queries. The numbers
// may reflect slightly different instants under concurrent writes; a
// failure in any sub-query fails the whole call.
func GetStatistics(db *sqlx.DB) (Statistics, error) {
	stats := Statistics{}
	if err := db.Get(&stats.TotalReports, `SELECT count(*) FROM reports`); err != nil {
		return Statistics{}, WrapError(err, "count reports")
	}
	if err := db.Get(&stats.TotalDownloads, `SELECT count(*) FROM download_logs`); err != nil {
		return Statistics{}, WrapError(err, "count downloads")
	}
	if err := db.Get(&stats.TotalUsers, `SELECT count(*) FROM profiles`); err != nil {
		return Statistics{}, WrapError(err, "count profiles")
	}
	if err := db.Get(&stats.TotalViews, `SELECT COALESCE(SUM(view_count), 0) FROM reports`); err != nil {
		return Statistics{}, WrapError(err, "sum views")
	}
	return stats, nil
}
