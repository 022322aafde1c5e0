package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"weather-info/internal/apperrors"
	"weather-info/internal/kafka"
	"weather-info/internal/models"
	"weather-info/internal/repositories"
	"weather-info/internal/validation"
)

// Имена, занятые статическими маршрутами /weather/current*: такой город
// нельзя было бы запросить через /weather/{city_name}.
var reservedCityNames = map[string]bool{
	"current":            true,
	"current-conditions": true,
}

func checkReserved(name string) error {
	if reservedCityNames[name] {
		return apperrors.Validation("city name %q is reserved", name)
	}
	return nil
}

type CityService struct {
	store    repositories.Store
	producer kafka.Publisher
}

// NewCityService: producer может быть nil, тогда события не публикуются.
func NewCityService(store repositories.Store, producer kafka.Publisher) *CityService {
	return &CityService{store: store, producer: producer}
}

func (s *CityService) CreateCity(ctx context.Context, input models.CityInput) (models.City, error) {
	city, err := validation.ValidateCity(input.Name, input.Latitude, input.Longitude)
	if err != nil {
		return models.City{}, err
	}
	if err := checkReserved(city.Name); err != nil {
		return models.City{}, err
	}

	created, err := s.store.CreateCity(ctx, city)
	if errors.Is(err, repositories.ErrDuplicate) {
		return models.City{}, apperrors.Validation("city %q already exists", city.Name)
	}
	if err != nil {
		return models.City{}, fmt.Errorf("create city: %w", err)
	}

	s.publishCreated(created)
	return created, nil
}

func (s *CityService) ListCities(ctx context.Context) ([]models.City, error) {
	return s.store.ListCities(ctx)
}

// AddCityForUser привязывает город к пользователю, создавая его при новом имени.
// added == false, если город уже был в списке.
func (s *CityService) AddCityForUser(ctx context.Context, userID int64, input models.CityInput) (city models.City, added bool, err error) {
	if err := requireUser(ctx, s.store, userID); err != nil {
		return models.City{}, false, err
	}
	candidate, err := validation.ValidateCity(input.Name, input.Latitude, input.Longitude)
	if err != nil {
		return models.City{}, false, err
	}
	if err := checkReserved(candidate.Name); err != nil {
		return models.City{}, false, err
	}

	city, err = s.findOrCreate(ctx, candidate)
	if err != nil {
		return models.City{}, false, err
	}

	added, err = s.store.LinkCity(ctx, userID, city.ID)
	if err != nil {
		return models.City{}, false, fmt.Errorf("link city: %w", err)
	}
	return city, added, nil
}

func (s *CityService) ListUserCities(ctx context.Context, userID int64) ([]models.City, error) {
	if err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	cities, err := s.store.ListUserCities(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, apperrors.NotFound("no cities found for user %d", userID)
	}
	return cities, nil
}

func (s *CityService) findOrCreate(ctx context.Context, candidate models.City) (models.City, error) {
	existing, err := s.store.FindCityByName(ctx, candidate.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return models.City{}, err
	}

	created, err := s.store.CreateCity(ctx, candidate)
	if errors.Is(err, repositories.ErrDuplicate) {
		// параллельный запрос успел создать город
		return s.store.FindCityByName(ctx, candidate.Name)
	}
	if err != nil {
		return models.City{}, fmt.Errorf("create city: %w", err)
	}
	s.publishCreated(created)
	return created, nil
}

func (s *CityService) publishCreated(city models.City) {
	if s.producer != nil {
		s.producer.PublishObjectAsync([]byte(strconv.FormatInt(city.ID, 10)), models.NewCityCreated(city))
	}
}
