package bootstrap

import (
	"context"
	"time"

	"weather-info/internal/cron"
	"weather-info/internal/repositories"
	"weather-info/internal/services"
)

func StartCronJobs(ctx context.Context, store repositories.CityRepository, weather *services.WeatherService, interval time.Duration) *cron.ForecastRefresher {
	refresher := cron.NewForecastRefresher(store, weather, interval)
	go refresher.Start(ctx)
	return refresher
}
