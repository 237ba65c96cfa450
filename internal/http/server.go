package httpapi

import (
	"net/http"
	"time"

	"reporthub-backend-go/internal/config"
	"reporthub-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)
		api.Post("/auth/logout", s.Logout)

		api.Route("/me", func(me chi.Router) {
			me.Use(WithAuth(s.Tokens))
			me.Get("/", s.Me)
			me.Put("/profile", s.UpdateMyProfile)
			me.Put("/password", s.ChangePassword)
			me.Get("/downloads", s.MyDownloads)
		})

		api.Route("/public", func(pub chi.Router) {
			pub.Get("/reports", s.PublicReports)
			pub.Get("/reports/{reportId}", s.PublicReportDetail)
			pub.Post("/reports/{reportId}/view", s.TrackReportView)
			pub.With(WithOptionalAuth(s.Tokens)).Post("/reports/{reportId}/download", s.TrackReportDownload)
			pub.Get("/categories", s.PublicCategories)
			pub.Get("/homepage", s.PublicHomepage)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Use(RequireRole(services.RoleAdmin))

			admin.Route("/reports", func(reports chi.Router) {
				reports.Get("/", s.AdminListReports)
				reports.Post("/", s.AdminCreateReport)
				reports.Post("/batch", s.AdminCreateReportsBatch)
				reports.Delete("/batch", s.AdminDeleteReportsBatch)
				reports.Put("/{reportId}", s.AdminUpdateReport)
				reports.Delete("/{reportId}", s.AdminDeleteReport)
				reports.Get("/{reportId}/downloads", s.AdminReportDownloads)
			})

			admin.Route("/categories", func(categories chi.Router) {
				categories.Post("/", s.AdminCreateCategory)
				categories.Put("/{categoryId}", s.AdminUpdateCategory)
				categories.Delete("/{categoryId}", s.AdminDeleteCategory)
			})

			admin.Get("/users", s.AdminListProfiles)
			admin.Put("/users/{userId}/role", s.AdminUpdateUserRole)
			admin.Put("/homepage/{configId}", s.AdminUpdateHomepage)
			admin.Get("/statistics", s.AdminStatistics)
			admin.Get("/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
