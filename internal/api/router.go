package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hugh/staffhub/internal/api/handlers"
	"github.com/hugh/staffhub/internal/api/middleware"
	"github.com/hugh/staffhub/internal/audit"
	"github.com/hugh/staffhub/internal/auth"
	"github.com/hugh/staffhub/internal/directory"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	AuditLogger    *audit.Logger
	AllowedOrigins []string
	RateLimitReqs  int
	RateLimitSecs  int
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		// Development default - configure CORS_ALLOWED_ORIGINS in production
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	employeeService := directory.NewEmployeeService(cfg.DB, cfg.AuditLogger, cfg.Logger)
	teamService := directory.NewTeamService(cfg.DB, cfg.AuditLogger, cfg.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	teamHandler := handlers.NewTeamHandler(teamService)
	logHandler := handlers.NewLogHandler(cfg.AuditLogger)

	// Health endpoint (no auth required)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Delete)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Post("/", teamHandler.Create)
				r.Get("/{id}", teamHandler.Get)
				r.Put("/{id}", teamHandler.Update)
				r.Delete("/{id}", teamHandler.Delete)
				r.Post("/{id}/assign", teamHandler.Assign)
				r.Post("/{id}/unassign", teamHandler.Unassign)
			})

			r.Get("/logs", logHandler.List)
		})
	})

	return &Router{r}
}
