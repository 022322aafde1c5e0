// Package forecasts keeps the latest hourly forecast per city.
// Entries expire after a TTL; a refresh replaces the whole city entry.
package forecasts

import (
	"context"
	"errors"

	"weather-info/internal/models"
)

var ErrMissing = errors.New("forecast slot missing")

type Store interface {
	Save(ctx context.Context, cityID int64, forecast *models.Forecast) error
	// Slot returns the slot for the HH:MM clock or ErrMissing.
	Slot(ctx context.Context, cityID int64, clock string) (models.HourlySlot, error)
}
