package handlers

import (
	"net/http"

	"weather-info/internal/models"
	"weather-info/internal/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUser: POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input models.UserInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, user)
}
