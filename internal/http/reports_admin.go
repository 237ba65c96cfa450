package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"reporthub-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type ReportUpsertRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *string `json:"categoryId"`
	PdfURL      *string `json:"pdfUrl"`
	Source      *string `json:"source"`
	PublishedAt *string `json:"publishedAt"`
}

type ReportBatchCreateRequest struct {
	Reports []ReportUpsertRequest `json:"reports"`
}

type ReportBatchDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) AdminListReports(w http.ResponseWriter, r *http.Request) {
	// Same query shape as the public catalog; admins just reach it
	// through the gated route.
	s.PublicReports(w, r)
}

func (s *Server) AdminCreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	input, err := reportInputFromRequest(req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	report, err := services.CreateReport(s.DB, input, CurrentUserIDPtr(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toReportDTO(*report))
}

func (s *Server) AdminCreateReportsBatch(w http.ResponseWriter, r *http.Request) {
	var req ReportBatchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	inputs := make([]services.ReportInput, 0, len(req.Reports))
	for _, row := range req.Reports {
		input, err := reportInputFromRequest(row)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		inputs = append(inputs, input)
	}
	reports, err := services.CreateReportsBatch(s.DB, inputs, CurrentUserIDPtr(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]ReportDTO{"reports": toReportDTOs(reports)})
}

func (s *Server) AdminUpdateReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")
	var req ReportUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	patch := services.ReportPatch{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PdfURL:      req.PdfURL,
		Source:      req.Source,
	}
	if req.PublishedAt != nil {
		publishedAt, err := parseReportDate(*req.PublishedAt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "publishedAt must be an RFC 3339 timestamp or YYYY-MM-DD date")
			return
		}
		patch.PublishedAt = publishedAt
	}
	if err := services.UpdateReport(s.DB, reportID, patch); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminDeleteReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")
	if err := services.DeleteReport(s.DB, reportID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminDeleteReportsBatch(w http.ResponseWriter, r *http.Request) {
	var req ReportBatchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.DeleteReportsBatch(s.DB, req.IDs); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminReportDownloads(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")
	page, err := parsePositive(r.URL.Query().Get("page"), 1)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	pageSize, err := parsePositive(r.URL.Query().Get("pageSize"), 10)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "pageSize must be a positive integer")
		return
	}
	logs, total, err := services.ListReportDownloads(s.DB, reportID, page, pageSize)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, DownloadListResponse{
		Logs:     toDownloadLogDTOs(logs),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func reportInputFromRequest(req ReportUpsertRequest) (services.ReportInput, error) {
	input := services.ReportInput{
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Source:      req.Source,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.PdfURL != nil {
		input.PdfURL = *req.PdfURL
	}
	if req.PublishedAt != nil {
		publishedAt, err := parseReportDate(*req.PublishedAt)
		if err != nil {
			return services.ReportInput{}, services.ErrBadRequest("publishedAt must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		input.PublishedAt = publishedAt
	}
	return input, nil
}

// Batch imports come from spreadsheets, so bare dates are accepted
// alongside full timestamps.
func parseReportDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		utc := parsed.UTC()
		return &utc, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}
