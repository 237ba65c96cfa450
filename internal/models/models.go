package models

import "time"

type Profile struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        *string   `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Report struct {
	ID            string     `db:"id"`
	Title         string     `db:"title"`
	Description   *string    `db:"description"`
	CategoryID    *string    `db:"category_id"`
	PdfURL        string     `db:"pdf_url"`
	Source        *string    `db:"source"`
	PublishedAt   *time.Time `db:"published_at"`
	ViewCount     int        `db:"view_count"`
	DownloadCount int        `db:"download_count"`
	CreatedBy     *string    `db:"created_by"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`

	// Snapshot of the referenced category at read time, filled by joins.
	Category *Category `db:"-"`
}

type DownloadLog struct {
	ID           string    `db:"id"`
	ReportID     string    `db:"report_id"`
	UserID       *string   `db:"user_id"`
	DownloadedAt time.Time `db:"downloaded_at"`

	Report *Report `db:"-"`
}

type HomepageConfig struct {
	ID         string    `db:"id"`
	Mission    *string   `db:"mission"`
	Features   []byte    `db:"features"`
	Advantages []byte    `db:"advantages"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
