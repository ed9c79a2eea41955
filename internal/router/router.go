package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/container"
)

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are applied before
// mounting this router in main.go.
func SetupRouter(c *container.Container, authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {

		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", c.AuthHandler.Register)
			r.Post("/auth/login", c.AuthHandler.Login)
			r.Post("/auth/refresh", c.AuthHandler.RefreshToken)
			r.Get("/shared/{token}", c.ItineraryHandler.GetShared)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/auth/logout", c.AuthHandler.Logout)
			r.Post("/auth/change-password", c.AuthHandler.ChangePassword)
			r.Get("/auth/me", c.AuthHandler.Me)

			r.Post("/itineraries", c.ItineraryHandler.Create)
			r.Get("/itineraries", c.ItineraryHandler.List)
			r.Get("/itineraries/{id}", c.ItineraryHandler.Get)
			r.Put("/itineraries/{id}", c.ItineraryHandler.Update)
			r.Delete("/itineraries/{id}", c.ItineraryHandler.Delete)
			r.Post("/itineraries/{id}/share", c.ItineraryHandler.Share)
			r.Delete("/itineraries/{id}/share", c.ItineraryHandler.Unshare)

			r.Put("/activities/{id}", c.ItineraryHandler.UpdateActivity)

			r.Get("/user/preferences", c.PreferencesHandler.Get)
			r.Post("/user/preferences", c.PreferencesHandler.Save)

			r.Post("/feedback", c.FeedbackHandler.Submit)
			r.Get("/subscription", c.SubscriptionHandler.Get)
			r.Get("/analytics", c.AnalyticsHandler.Get)

			r.Get("/places/search", c.PlacesHandler.Search)
			r.Get("/weather", c.WeatherHandler.Forecast)
		})
	})

	return r
}
