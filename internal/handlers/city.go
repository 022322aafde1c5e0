package handlers

import (
	"net/http"

	"weather-info/internal/models"
	"weather-info/internal/services"
)

type cityRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (req cityRequest) input() (models.CityInput, error) {
	lat, err := requiredFloat(req.Latitude, "latitude")
	if err != nil {
		return models.CityInput{}, err
	}
	lon, err := requiredFloat(req.Longitude, "longitude")
	if err != nil {
		return models.CityInput{}, err
	}
	return models.CityInput{Name: req.Name, Latitude: lat, Longitude: lon}, nil
}

type CityHandler struct {
	service *services.CityService
}

func NewCityHandler(service *services.CityService) *CityHandler {
	return &CityHandler{service: service}
}

// CreateCity: POST /cities
func (h *CityHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	input, err := h.readCity(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	city, err := h.service.CreateCity(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, city)
}

// ListCities: GET /cities
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.ListCities(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cities)
}

// AddForUser: POST /users/{user_id}/cities/add
func (h *CityHandler) AddForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	input, err := h.readCity(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	city, added, err := h.service.AddCityForUser(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !added {
		WriteJSON(w, http.StatusOK, messagef("City %s is already in the list of user %d", city.Name, userID))
		return
	}
	WriteJSON(w, http.StatusOK, messagef("City %s added for user %d", city.Name, userID))
}

// ListForUser: GET /users/{user_id}/cities
func (h *CityHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	cities, err := h.service.ListUserCities(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cities)
}

func (h *CityHandler) readCity(w http.ResponseWriter, r *http.Request) (models.CityInput, error) {
	var req cityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return models.CityInput{}, err
	}
	return req.input()
}
