package httpapi

import (
	"encoding/json"
	"net/http"

	"reporthub-backend-go/internal/services"
)

type UpdateProfileRequest struct {
	Email *string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := services.GetProfile(s.DB, CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if profile == nil {
		WriteError(w, http.StatusNotFound, "Profile not found")
		return
	}
	WriteJSON(w, http.StatusOK, toProfileDTO(*profile))
}

func (s *Server) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.UpdateProfileEmail(s.DB, CurrentUserID(r), req.Email); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(req.NewPassword) < 8 {
		WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	profile, err := services.GetProfile(s.DB, CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if profile == nil {
		WriteError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if !s.Tokens.VerifyPassword(req.CurrentPassword, profile.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}
	hash, err := s.Tokens.HashPassword(req.NewPassword)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := services.UpdatePasswordHash(s.DB, profile.ID, hash); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) MyDownloads(w http.ResponseWriter, r *http.Request) {
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
	logs, total, err := services.ListUserDownloads(s.DB, CurrentUserID(r), page, pageSize)
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
