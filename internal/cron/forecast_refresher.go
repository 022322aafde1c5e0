package cron

import (
	"context"
	"log/slog"
	"time"

	"weather-info/internal/models"
)

type CityLister interface {
	ListCities(ctx context.Context) ([]models.City, error)
}

type Refresher interface {
	RefreshCity(ctx context.Context, city models.City) (*models.Forecast, error)
}

// ForecastRefresher периодически обновляет прогноз для всех городов.
type ForecastRefresher struct {
	cities    CityLister
	refresher Refresher
	interval  time.Duration
}

func NewForecastRefresher(cities CityLister, refresher Refresher, interval time.Duration) *ForecastRefresher {
	return &ForecastRefresher{
		cities:    cities,
		refresher: refresher,
		interval:  interval,
	}
}

func (p *ForecastRefresher) Start(ctx context.Context) {
	slog.Info("ForecastRefresher started", "interval", p.interval)

	if _, err := p.RunOnce(ctx); err != nil {
		slog.Error("ForecastRefresher iteration failed", "error", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := p.RunOnce(ctx); err != nil {
				slog.Error("ForecastRefresher iteration failed", "error", err)
			}

		case <-ctx.Done():
			slog.Info("ForecastRefresher stopped")
			return
		}
	}
}

// RunOnce обновляет все города и возвращает число успешных.
// Ошибка по одному городу логируется и пропускается.
func (p *ForecastRefresher) RunOnce(ctx context.Context) (int, error) {
	cities, err := p.cities.ListCities(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, city := range cities {
		if ctx.Err() != nil {
			return refreshed, ctx.Err()
		}
		if _, err := p.refresher.RefreshCity(ctx, city); err != nil {
			slog.Warn("forecast refresh failed", "city", city.Name, "error", err)
			continue
		}
		refreshed++
	}

	slog.Info("forecasts refreshed", "ok", refreshed, "total", len(cities))
	return refreshed, nil
}
