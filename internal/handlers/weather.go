package handlers

import (
	"net/http"

	"weather-info/internal/services"
)

type WeatherHandler struct {
	weatherService *services.WeatherService
}

func NewWeatherHandler(weatherService *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// GetCurrent: GET /weather/current?latitude=&longitude=
func (h *WeatherHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "latitude")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	lon, err := queryFloat(r, "longitude")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	reading, err := h.weatherService.Current(r.Context(), lat, lon)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, reading)
}

// GetForCity: GET /weather/{city_name}?time=&params=
func (h *WeatherHandler) GetForCity(w http.ResponseWriter, r *http.Request) {
	cityName, err := pathParam(r, "city_name")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	values, err := h.weatherService.ForCity(r.Context(), cityName, q.Get("time"), q.Get("params"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, values)
}

// GetForUser: GET /users/{user_id}/weather?city_name=&time=&parameters=
func (h *WeatherHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	params := q.Get("parameters")
	if params == "" {
		params = q.Get("params")
	}
	values, err := h.weatherService.ForUserCity(r.Context(), userID, q.Get("city_name"), q.Get("time"), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, values)
}
