package bootstrap

import (
	"weather-info/internal/forecasts"
	"weather-info/internal/handlers"
	"weather-info/internal/kafka"
	"weather-info/internal/repositories"
	"weather-info/internal/services"
)

type HandlersBundle struct {
	WeatherHandler *handlers.WeatherHandler
	CityHandler    *handlers.CityHandler
	UserHandler    *handlers.UserHandler
	HealthHandler  *handlers.HealthHandler
}

type ServicesBundle struct {
	Weather *services.WeatherService
	City    *services.CityService
	User    *services.UserService
}

type BootstrapBundle struct {
	Handlers *HandlersBundle
	Services *ServicesBundle
}

func InitBootstrap(
	store repositories.Store,
	forecastStore forecasts.Store,
	provider services.ForecastProvider,
	kafkaBundle *kafka.KafkaBundle,
) *BootstrapBundle {
	var cityEvents, userEvents kafka.Publisher
	if kafkaBundle != nil {
		cityEvents = publisher(kafkaBundle.CityProducer)
		userEvents = publisher(kafkaBundle.UserProducer)
	}

	svc := &ServicesBundle{
		Weather: services.NewWeatherService(provider, store, forecastStore),
		City:    services.NewCityService(store, cityEvents),
		User:    services.NewUserService(store, userEvents),
	}

	return &BootstrapBundle{
		Services: svc,
		Handlers: &HandlersBundle{
			WeatherHandler: handlers.NewWeatherHandler(svc.Weather),
			CityHandler:    handlers.NewCityHandler(svc.City),
			UserHandler:    handlers.NewUserHandler(svc.User),
			HealthHandler:  handlers.NewHealthHandler(store),
		},
	}
}

// publisher не даёт nil *Producer превратиться в не-nil интерфейс.
func publisher(p *kafka.Producer) kafka.Publisher {
	if p == nil {
		return nil
	}
	return p
}
