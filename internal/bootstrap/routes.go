package bootstrap

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"weather-info/internal/middleware"
)

func InitRoutes(h *HandlersBundle, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", h.HealthHandler.Healthz)

	r.Route("/weather", func(r chi.Router) {
		r.Get("/current", h.WeatherHandler.GetCurrent)
		r.Get("/current-conditions", h.WeatherHandler.GetCurrent)
		r.Get("/{city_name}", h.WeatherHandler.GetForCity)
	})

	r.Post("/cities", h.CityHandler.CreateCity)
	r.Get("/cities", h.CityHandler.ListCities)

	r.Post("/users", h.UserHandler.CreateUser)
	r.Route("/users/{user_id}", func(r chi.Router) {
		r.Post("/cities/add", h.CityHandler.AddForUser)
		r.Get("/cities", h.CityHandler.ListForUser)
		r.Get("/weather", h.WeatherHandler.GetForUser)
	})

	return r
}
