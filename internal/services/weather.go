package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"weather-info/internal/apperrors"
	"weather-info/internal/forecasts"
	"weather-info/internal/models"
	"weather-info/internal/repositories"
	"weather-info/internal/validation"
)

// ForecastProvider: внешний источник погоды.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, latitude, longitude float64) (*models.Forecast, error)
}

type WeatherService struct {
	provider  ForecastProvider
	store     repositories.Store
	forecasts forecasts.Store
}

func NewWeatherService(provider ForecastProvider, store repositories.Store, forecastStore forecasts.Store) *WeatherService {
	return &WeatherService{
		provider:  provider,
		store:     store,
		forecasts: forecastStore,
	}
}

// Current: текущая погода по координатам, всегда запрос к провайдеру.
func (s *WeatherService) Current(ctx context.Context, latitude, longitude float64) (*models.WeatherReading, error) {
	if err := validation.ValidateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	f, err := s.provider.FetchForecast(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}
	return &models.WeatherReading{
		Temperature: f.Current.Temperature,
		WindSpeed:   f.Current.WindSpeed,
		Pressure:    f.Current.Pressure,
	}, nil
}

// ForCity находит город по имени и возвращает запрошенные поля погоды.
// Пустой clock: текущая погода, иначе часовой слот HH:MM.
func (s *WeatherService) ForCity(ctx context.Context, cityName, clock, params string) (map[string]float64, error) {
	fields, err := validation.ParseParams(params)
	if err != nil {
		return nil, err
	}
	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		return nil, apperrors.Validation("city name must not be empty")
	}

	city, err := s.store.FindCityByName(ctx, cityName)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.NotFound("city %q not found", cityName)
	}
	if err != nil {
		return nil, err
	}

	reading, err := s.readingFor(ctx, city, clock)
	if err != nil {
		return nil, err
	}
	return project(reading, fields, strings.TrimSpace(params) != "")
}

// ForUserCity: как ForCity, но только по городам пользователя.
func (s *WeatherService) ForUserCity(ctx context.Context, userID int64, cityName, clock, params string) (map[string]float64, error) {
	if err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	fields, err := validation.ParseParams(params)
	if err != nil {
		return nil, err
	}
	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		return nil, apperrors.Validation("city name must not be empty")
	}

	city, err := s.store.FindUserCity(ctx, userID, cityName)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.NotFound("city %q not found in the user's list", cityName)
	}
	if err != nil {
		return nil, err
	}

	reading, err := s.readingFor(ctx, city, clock)
	if err != nil {
		return nil, err
	}
	return project(reading, fields, strings.TrimSpace(params) != "")
}

// RefreshCity загружает прогноз для города и сохраняет часовые слоты.
func (s *WeatherService) RefreshCity(ctx context.Context, city models.City) (*models.Forecast, error) {
	f, err := s.provider.FetchForecast(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return nil, err
	}
	if err := s.forecasts.Save(ctx, city.ID, f); err != nil {
		return nil, fmt.Errorf("save forecast for %q: %w", city.Name, err)
	}
	return f, nil
}

func (s *WeatherService) readingFor(ctx context.Context, city models.City, clock string) (models.WeatherReading, error) {
	if strings.TrimSpace(clock) == "" {
		f, err := s.provider.FetchForecast(ctx, city.Latitude, city.Longitude)
		if err != nil {
			return models.WeatherReading{}, err
		}
		if err := s.forecasts.Save(ctx, city.ID, f); err != nil {
			slog.Warn("save forecast failed", "city", city.Name, "error", err)
		}
		reading := f.Current
		if slot, ok := f.CurrentSlot(); ok {
			hourly := slot.Reading()
			reading.Humidity = hourly.Humidity
			reading.Precipitation = hourly.Precipitation
		}
		return reading, nil
	}

	slotClock, err := validation.ParseSlotTime(clock)
	if err != nil {
		return models.WeatherReading{}, err
	}

	slot, err := s.forecasts.Slot(ctx, city.ID, slotClock)
	if err == nil {
		return slot.Reading(), nil
	}
	if !errors.Is(err, forecasts.ErrMissing) {
		slog.Warn("forecast store read failed, fetching from provider", "city", city.Name, "error", err)
	}

	// В хранилище нет прогноза: запрашиваем и сохраняем.
	f, err := s.RefreshCity(ctx, city)
	if err != nil {
		return models.WeatherReading{}, err
	}
	slot, ok := f.SlotAt(slotClock)
	if !ok {
		return models.WeatherReading{}, apperrors.NotFound("no forecast for city %q at %s", city.Name, slotClock)
	}
	return slot.Reading(), nil
}

// project выбирает запрошенные поля. Отсутствующее поле считается ошибкой,
// только если клиент запросил его явно.
func project(r models.WeatherReading, fields []string, explicit bool) (map[string]float64, error) {
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		switch f {
		case validation.ParamTemperature:
			out[f] = r.Temperature
		case validation.ParamWindSpeed:
			out[f] = r.WindSpeed
		case validation.ParamPressure:
			out[f] = r.Pressure
		case validation.ParamHumidity:
			if r.Humidity == nil {
				if !explicit {
					continue
				}
				return nil, apperrors.Upstream(nil, "humidity unavailable from weather provider")
			}
			out[f] = *r.Humidity
		case validation.ParamPrecipitation:
			if r.Precipitation == nil {
				if !explicit {
					continue
				}
				return nil, apperrors.Upstream(nil, "precipitation unavailable from weather provider")
			}
			out[f] = *r.Precipitation
		default:
			return nil, apperrors.Validation("unknown parameter %q", f)
		}
	}
	return out, nil
}
