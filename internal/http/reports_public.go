package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"reporthub-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) PublicReports(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.parseReportFilter(w, r)
	if !ok {
		return
	}
	reports, total, err := services.ListReports(s.DB, filter)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ReportListResponse{
		Reports:  toReportDTOs(reports),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

func (s *Server) PublicReportDetail(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")
	report, err := services.GetReport(s.DB, reportID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if report == nil {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}
	WriteJSON(w, http.StatusOK, toReportDTO(*report))
}

func (s *Server) TrackReportView(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")
	if err := services.IncrementViewCount(s.DB, reportID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrackReportDownload appends the download log entry and then bumps the
// counter. The two writes are deliberately independent: a counter
// failure after a successful log is surfaced but not rolled back.
func (s *Server) TrackReportDownload(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")
	report, err := services.GetReport(s.DB, reportID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if report == nil {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}
	if err := services.LogDownload(s.DB, reportID, CurrentUserIDPtr(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := services.IncrementDownloadCount(s.DB, reportID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) PublicCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := services.ListCategories(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		items = append(items, toCategoryDTO(category))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) PublicHomepage(w http.ResponseWriter, r *http.Request) {
	config, err := services.GetHomepageConfig(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if config == nil {
		WriteError(w, http.StatusNotFound, "Homepage config not found")
		return
	}
	WriteJSON(w, http.StatusOK, toHomepageConfigDTO(*config))
}

func (s *Server) parseReportFilter(w http.ResponseWriter, r *http.Request) (services.ReportFilter, bool) {
	page, err := parsePositive(r.URL.Query().Get("page"), 1)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "page must be a positive integer")
		return services.ReportFilter{}, false
	}
	pageSize, err := parsePositive(r.URL.Query().Get("pageSize"), 10)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "pageSize must be a positive integer")
		return services.ReportFilter{}, false
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return services.ReportFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: strings.TrimSpace(r.URL.Query().Get("categoryId")),
		Search:     r.URL.Query().Get("search"),
		SortBy:     strings.TrimSpace(r.URL.Query().Get("sortBy")),
		SortOrder:  strings.TrimSpace(r.URL.Query().Get("sortOrder")),
	}, true
}

// parsePositive applies the fallback only for an absent parameter;
// anything present but not a positive integer is an error.
func parsePositive(raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, strconv.ErrRange
	}
	return value, nil
}
