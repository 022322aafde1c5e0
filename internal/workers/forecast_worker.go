package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"weather-info/internal/models"
)

type Refresher interface {
	RefreshCity(ctx context.Context, city models.City) (*models.Forecast, error)
}

// ForecastWorker загружает прогноз для только что созданных городов.
type ForecastWorker struct {
	messages  <-chan []byte
	refresher Refresher
}

func NewForecastWorker(messages <-chan []byte, refresher Refresher) *ForecastWorker {
	return &ForecastWorker{messages: messages, refresher: refresher}
}

func (w *ForecastWorker) Start(ctx context.Context) {
	slog.Info("ForecastWorker started")
	for {
		select {
		case msg := <-w.messages:
			if err := w.Handle(ctx, msg); err != nil {
				slog.Error("ForecastWorker error", "error", err)
			}
		case <-ctx.Done():
			slog.Info("ForecastWorker stopped")
			return
		}
	}
}

func (w *ForecastWorker) Handle(ctx context.Context, value []byte) error {
	var event models.CityEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("unmarshal city event: %w", err)
	}
	if event.City.ID <= 0 {
		return fmt.Errorf("city event %s without city id", event.ID)
	}

	f, err := w.refresher.RefreshCity(ctx, event.City)
	if err != nil {
		return fmt.Errorf("prefetch forecast for %q: %w", event.City.Name, err)
	}
	slog.Info("forecast prefetched", "city", event.City.Name, "slots", len(f.Hourly))
	return nil
}
