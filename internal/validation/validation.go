// Package validation checks shape and range of incoming data before it
// reaches storage or the weather provider. All functions are pure.
package validation

import (
	"math"
	"strings"
	"unicode/utf8"

	"weather-info/internal/apperrors"
	"weather-info/internal/models"
)

const (
	MaxCityNameLen = 100
	MaxUsernameLen = 50
)

func ValidateCity(name string, latitude, longitude float64) (models.City, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return models.City{}, apperrors.Validation("name must not be empty")
	}
	if n > MaxCityNameLen {
		return models.City{}, apperrors.Validation("name must be at most %d characters, got %d", MaxCityNameLen, n)
	}
	if err := ValidateCoordinates(latitude, longitude); err != nil {
		return models.City{}, err
	}
	return models.City{Name: name, Latitude: latitude, Longitude: longitude}, nil
}

func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return apperrors.Validation("latitude must be between -90 and 90, got %v", latitude)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return apperrors.Validation("longitude must be between -180 and 180, got %v", longitude)
	}
	return nil
}

func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n == 0 {
		return "", apperrors.Validation("username must not be empty")
	}
	if n > MaxUsernameLen {
		return "", apperrors.Validation("username must be at most %d characters, got %d", MaxUsernameLen, n)
	}
	return username, nil
}

func ValidateUserID(id int64) (int64, error) {
	if id <= 0 {
		return 0, apperrors.Validation("user id must be a positive integer, got %d", id)
	}
	return id, nil
}
