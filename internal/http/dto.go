package httpapi

import (
	"time"

	"reporthub-backend-go/internal/models"
	"reporthub-backend-go/internal/services"
)

type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ReportDTO struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   *string      `json:"description"`
	CategoryID    *string      `json:"categoryId"`
	Category      *CategoryDTO `json:"category"`
	PdfURL        string       `json:"pdfUrl"`
	Source        *string      `json:"source"`
	PublishedAt   *time.Time   `json:"publishedAt"`
	ViewCount     int          `json:"viewCount"`
	DownloadCount int          `json:"downloadCount"`
	CreatedBy     *string      `json:"createdBy"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type ReportListResponse struct {
	Reports  []ReportDTO `json:"reports"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

type ReportRefDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	PdfURL     string  `json:"pdfUrl"`
	CategoryID *string `json:"categoryId"`
}

type DownloadLogDTO struct {
	ID           string        `json:"id"`
	ReportID     string        `json:"reportId"`
	UserID       *string       `json:"userId"`
	DownloadedAt time.Time     `json:"downloadedAt"`
	Report       *ReportRefDTO `json:"report,omitempty"`
}

type DownloadListResponse struct {
	Logs     []DownloadLogDTO `json:"logs"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type ProfileDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type HomepageConfigDTO struct {
	ID         string    `json:"id"`
	Mission    *string   `json:"mission"`
	Features   []string  `json:"features"`
	Advantages []string  `json:"advantages"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func toReportDTO(report models.Report) ReportDTO {
	dto := ReportDTO{
		ID:            report.ID,
		Title:         report.Title,
		Description:   report.Description,
		CategoryID:    report.CategoryID,
		PdfURL:        report.PdfURL,
		Source:        report.Source,
		PublishedAt:   report.PublishedAt,
		ViewCount:     report.ViewCount,
		DownloadCount: report.DownloadCount,
		CreatedBy:     report.CreatedBy,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
	if report.Category != nil {
		category := toCategoryDTO(*report.Category)
		dto.Category = &category
	}
	return dto
}

func toReportDTOs(reports []models.Report) []ReportDTO {
	items := make([]ReportDTO, 0, len(reports))
	for _, report := range reports {
		items = append(items, toReportDTO(report))
	}
	return items
}

func toDownloadLogDTO(entry models.DownloadLog) DownloadLogDTO {
	dto := DownloadLogDTO{
		ID:           entry.ID,
		ReportID:     entry.ReportID,
		UserID:       entry.UserID,
		DownloadedAt: entry.DownloadedAt,
	}
	if entry.Report != nil {
		dto.Report = &ReportRefDTO{
			ID:         entry.Report.ID,
			Title:      entry.Report.Title,
			PdfURL:     entry.Report.PdfURL,
			CategoryID: entry.Report.CategoryID,
		}
	}
	return dto
}

func toDownloadLogDTOs(entries []models.DownloadLog) []DownloadLogDTO {
	items := make([]DownloadLogDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toDownloadLogDTO(entry))
	}
	return items
}

func toProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func toHomepageConfigDTO(config models.HomepageConfig) HomepageConfigDTO {
	return HomepageConfigDTO{
		ID:         config.ID,
		Mission:    config.Mission,
		Features:   services.DecodeStringList(config.Features),
		Advantages: services.DecodeStringList(config.Advantages),
		UpdatedAt:  config.UpdatedAt,
	}
}
