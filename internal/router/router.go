package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jacksu4/Vibe-Travel/internal/api/nearby"
	"github.com/jacksu4/Vibe-Travel/internal/api/photos"
	"github.com/jacksu4/Vibe-Travel/internal/api/trip"
)

// Config contains the handlers needed for the router setup.
type Config struct {
	TripHandler   *trip.Handler
	NearbyHandler *nearby.Handler
	PhotosHandler *photos.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plan-trip", cfg.TripHandler.PlanTrip)
		r.Post("/nearby", cfg.NearbyHandler.FindNearby)
		r.Post("/place-photos", cfg.PhotosHandler.GetPlacePhotos)
	})

	return r
}
