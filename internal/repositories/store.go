package repositories

import (
	"context"
	"errors"

	"weather-info/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type CityRepository interface {
	CreateCity(ctx context.Context, city models.City) (models.City, error)
	ListCities(ctx context.Context) ([]models.City, error)
	FindCityByName(ctx context.Context, name string) (models.City, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, username string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	// LinkCity возвращает false, если связь уже была.
	LinkCity(ctx context.Context, userID, cityID int64) (bool, error)
	ListUserCities(ctx context.Context, userID int64) ([]models.City, error)
	FindUserCity(ctx context.Context, userID int64, name string) (models.City, error)
}

// Store: хранилище городов и пользователей.
type Store interface {
	CityRepository
	UserRepository
	Ping(ctx context.Context) error
}
