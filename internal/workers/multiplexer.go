package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	"weather-info/internal/kafka"
	"weather-info/internal/models"
)

// Route sends a city-topic message to the channel of its event type.
func Route(ctx context.Context, value []byte, forecastCh chan<- []byte) {
	var wrapper struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(value, &wrapper); err != nil {
		slog.Warn("invalid message in multiplexer", "error", err)
		return
	}

	switch wrapper.Type {
	case models.EventCityCreated:
		select {
		case forecastCh <- value:
		case <-ctx.Done():
		}
	default:
		slog.Debug("multiplexer: skipping message", "type", wrapper.Type)
	}
}

func StartCityMultiplexer(ctx context.Context, consumer *kafka.Consumer, forecastCh chan<- []byte) {
	consumer.Start(ctx, func(ctx context.Context, _, value []byte) {
		Route(ctx, value, forecastCh)
	})
}
