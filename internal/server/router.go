package server

import (
	"net/http"
	"time"

	"waterworks-backend/internal/config"
	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	roles RoleResolver,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	consumers handler.ConsumerHandler,
	records handler.RecordHandler,
	locations handler.LocationHandler,
	payments handler.PaymentHandler,
	imports handler.ImportHandler,
	users handler.UserAdminHandler,
	home handler.HomeHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	home.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret, roles))
		// read-only (reader/user/admin)
		pr.Group(func(rr chi.Router) {
			rr.Use(RequireRole(domain.RoleAdmin, domain.RoleUser, domain.RoleReader))
			consumers.RegisterRoutes(rr)
			records.RegisterRoutes(rr)
			locations.RegisterRoutes(rr)
		})
		// billing (user/admin)
		pr.Group(func(ur chi.Router) {
			ur.Use(RequireRole(domain.RoleAdmin, domain.RoleUser))
			payments.RegisterRoutes(ur)
		})
		// admin-only
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			imports.RegisterRoutes(ar)
			users.RegisterRoutes(ar)
		})
	})

	return r
}
