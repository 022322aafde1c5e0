package workers

import (
	"context"

	"weather-info/internal/kafka"
)

type WorkerBundle struct {
	ForecastWorker *ForecastWorker
}

// StartAllWorkers returns nil when Kafka is disabled.
func StartAllWorkers(ctx context.Context, refresher Refresher, kafkaBundle *kafka.KafkaBundle) *WorkerBundle {
	if kafkaBundle == nil || kafkaBundle.CityConsumer == nil {
		return nil
	}

	forecastCh := make(chan []byte, 100)
	StartCityMultiplexer(ctx, kafkaBundle.CityConsumer, forecastCh)

	forecastWorker := NewForecastWorker(forecastCh, refresher)
	go forecastWorker.Start(ctx)

	return &WorkerBundle{ForecastWorker: forecastWorker}
}
