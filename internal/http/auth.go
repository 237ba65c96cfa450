package httpapi

import (
	"context"
	"net/http"
	"strings"

	"reporthub-backend-go/internal/services"
)

type contextKey string

const (
	ctxUserID   contextKey = "userID"
	ctxUsername contextKey = "username"
	ctxRole     contextKey = "role"
)

func withIdentity(ctx context.Context, userID, username, role string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUsername, username)
	return context.WithValue(ctx, ctxRole, role)
}

// WithAuth rejects requests without a valid access token and places the
// caller identity into the request context.
func WithAuth(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, username, role, ok := identityFromHeader(tokenService, r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), userID, username, role)))
		})
	}
}

// WithOptionalAuth lets anonymous requests through but records the
// identity when a valid token is presented. Used by the download
// endpoint, which logs the user only when there is one.
func WithOptionalAuth(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, username, role, ok := identityFromHeader(tokenService, r); ok {
				r = r.WithContext(withIdentity(r.Context(), userID, username, role))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFromHeader(tokenService services.TokenService, r *http.Request) (string, string, string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return "", "", "", false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	token, claims, err := tokenService.ParseToken(tokenStr)
	if err != nil || !token.Valid {
		return "", "", "", false
	}
	if claims["typ"] != "access" {
		return "", "", "", false
	}
	userID, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return "", "", "", false
	}
	return userID, username, role, true
}

func CurrentUserID(r *http.Request) string {
	if value, ok := r.Context().Value(ctxUserID).(string); ok {
		return value
	}
	return ""
}

// CurrentUserIDPtr is nil for anonymous callers, which is how the
// download log records them.
func CurrentUserIDPtr(r *http.Request) *string {
	if value := CurrentUserID(r); value != "" {
		return &value
	}
	return nil
}

func CurrentRole(r *http.Request) string {
	if value, ok := r.Context().Value(ctxRole).(string); ok {
		return value
	}
	return ""
}

// RequireRole is the single authorization gate every mutating admin
// route goes through.
func RequireRole(role string) func(http.Handler) http.Handler {
	role = strings.ToLower(role)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.ToLower(CurrentRole(r)) != role {
				WriteError(w, http.StatusForbidden, "Not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
