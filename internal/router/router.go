package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kiwari-pos/kds/internal/aggregator"
	"github.com/kiwari-pos/kds/internal/config"
	"github.com/kiwari-pos/kds/internal/enum"
	"github.com/kiwari-pos/kds/internal/handler"
	mw "github.com/kiwari-pos/kds/internal/middleware"
	"github.com/kiwari-pos/kds/internal/service"
	"github.com/kiwari-pos/kds/internal/store/postgres"
	"github.com/kiwari-pos/kds/internal/ws"
)

// New creates a Chi router with all kitchen-display routes wired up.
func New(cfg *config.Config, st *postgres.Store, agg *aggregator.Aggregator, hub *ws.Hub, errs *service.ErrorState) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",                // SvelteKit dev server
			"https://kds.nasibakarkiwari.com",      // Production kitchen displays
			"https://stg-kds.nasibakarkiwari.com",  // Staging kitchen displays
		},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(cfg.PasswordHashes(), cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/queue", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Station routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleKitchen, enum.RoleAdmin))

			queueHandler := handler.NewQueueHandler(agg)
			r.Route("/queue", queueHandler.RegisterRoutes)

			transitionService := service.NewTransitionService(st, errs)
			transitionHandler := handler.NewTransitionHandler(transitionService, errs)
			r.Route("/orders", transitionHandler.RegisterRoutes)
			r.Route("/kitchen/error", transitionHandler.RegisterErrorRoutes)
		})

		// Operator maintenance (ADMIN only)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin))

			maintenanceHandler := handler.NewMaintenanceHandler(st, errs)
			r.Route("/timing-records", maintenanceHandler.RegisterRoutes)
		})
	})

	return r
}
