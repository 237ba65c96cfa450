package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"reporthub-backend-go/internal/services"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresAt    int64      `json:"expiresAt"`
	User         ProfileDTO `json:"user"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	hash, err := s.Tokens.HashPassword(req.Password)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	profile, err := services.CreateProfile(s.DB, uuid.NewString(), req.Username, req.Email, hash)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	s.writeTokenResponse(w, profile.ID, profile.Username, profile.Role, toProfileDTO(*profile))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	profile, err := services.FindProfileByUsername(s.DB, req.Username)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if profile == nil || !s.Tokens.VerifyPassword(req.Password, profile.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	s.writeTokenResponse(w, profile.ID, profile.Username, profile.Role, toProfileDTO(*profile))
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	token, claims, err := s.Tokens.ParseToken(strings.TrimSpace(req.RefreshToken))
	if err != nil || !token.Valid || claims["typ"] != "refresh" {
		WriteError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	userID, _ := claims["sub"].(string)
	profile, err := services.GetProfile(s.DB, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if profile == nil {
		WriteError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	s.writeTokenResponse(w, profile.ID, profile.Username, profile.Role, toProfileDTO(*profile))
}

// Logout is stateless: tokens are not tracked server side, so the
// client just discards them. The endpoint exists so the frontend has a
// single place to call.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeTokenResponse(w http.ResponseWriter, userID, username, role string, user ProfileDTO) {
	access, expiresAt, err := s.Tokens.CreateAccessToken(userID, username, role)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refresh, err := s.Tokens.CreateRefreshToken(userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         user,
	})
}
