package httpapi

import (
	"encoding/json"
	"net/http"

	"reporthub-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type CategoryUpsertRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type HomepageUpdateRequest struct {
	Mission    *string   `json:"mission"`
	Features   *[]string `json:"features"`
	Advantages *[]string `json:"advantages"`
}

func (s *Server) AdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	input := services.CategoryInput{Description: req.Description}
	if req.Name != nil {
		input.Name = *req.Name
	}
	category, err := services.CreateCategory(s.DB, input)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCategoryDTO(*category))
}

func (s *Server) AdminUpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	var req CategoryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	patch := services.CategoryPatch{Name: req.Name, Description: req.Description}
	if err := services.UpdateCategory(s.DB, categoryID, patch); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	if err := services.DeleteCategory(s.DB, categoryID); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := services.ListProfiles(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]ProfileDTO, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, toProfileDTO(profile))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) AdminUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.UpdateUserRole(s.DB, userID, req.Role); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminUpdateHomepage(w http.ResponseWriter, r *http.Request) {
	configID := chi.URLParam(r, "configId")
	var req HomepageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	patch := services.HomepagePatch{
		Mission:    req.Mission,
		Features:   req.Features,
		Advantages: req.Advantages,
	}
	if err := services.UpdateHomepageConfig(s.DB, configID, patch); err != nil {
		WriteServiceError(w, err)
		return
	}
	config, err := services.GetHomepageConfig(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toHomepageConfigDTO(*config))
}

func (s *Server) AdminStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := services.GetStatistics(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
