package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nvalverde/tourvia-be/internal/api/handlers"
	"github.com/nvalverde/tourvia-be/internal/auth"
	"github.com/nvalverde/tourvia-be/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles the services the router wires into handlers.
type RouterDeps struct {
	DB           *sql.DB
	Users        services.UserServiceProvider
	Sessions     services.SessionServiceProvider
	Catalog      services.CatalogServiceProvider
	Availability services.AvailabilityServiceProvider
	Orders       services.OrderServiceProvider
	Events       services.EventServiceProvider
	CORSOrigin   string
	SecureCookie bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Sessions, deps.SecureCookie)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Availability)
	orderHandler := handlers.NewOrderHandler(deps.Orders)
	eventHandler := handlers.NewEventHandler(deps.Events)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	requireSession := auth.SessionMiddleware(deps.Sessions)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(requireSession)
				r.Put("/profile", authHandler.UpdateProfile)
				r.Put("/password", authHandler.ChangePassword)
			})
		})

		r.Route("/attractions", func(r chi.Router) {
			r.Get("/", catalogHandler.ListAttractions)
			r.Get("/{id}", catalogHandler.GetAttraction)
		})
		r.Route("/accommodations", func(r chi.Router) {
			r.Get("/", catalogHandler.ListAccommodations)
			r.Get("/{id}", catalogHandler.GetAccommodation)
		})
		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", catalogHandler.ListRestaurants)
			r.Get("/{id}", catalogHandler.GetRestaurant)
			r.Get("/{id}/availability", catalogHandler.GetAvailability)
		})
		r.Route("/guides", func(r chi.Router) {
			r.Get("/", catalogHandler.ListGuides)
			r.Get("/{id}", catalogHandler.GetGuide)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/", orderHandler.List)
			r.Post("/", orderHandler.Create)
			r.Get("/{id}", orderHandler.Get)
			r.Post("/{id}/cancel", orderHandler.Cancel)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/events/recent", eventHandler.GetRecent)
		})
	})

	return r
}
