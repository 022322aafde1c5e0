package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-info/internal/api"
	"weather-info/internal/bootstrap"
	"weather-info/internal/config"
	"weather-info/internal/db"
	"weather-info/internal/forecasts"
	"weather-info/internal/kafka"
	"weather-info/internal/logging"
	"weather-info/internal/repositories"
	"weather-info/internal/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ------------------------
	// Storage
	// ------------------------
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("storage init failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var redisClient *redis.Client
	var forecastStore forecasts.Store
	if cfg.RedisURL != "" {
		redisClient, err = db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis init failed", "error", err)
			os.Exit(1)
		}
		forecastStore = forecasts.NewRedisStore(redisClient, cfg.ForecastTTL)
	} else {
		slog.Info("REDIS_URL is empty, forecasts are kept in memory")
		forecastStore = forecasts.NewMemoryStore(cfg.ForecastTTL)
	}

	// ------------------------
	// Kafka
	// ------------------------
	kafkaBundle, err := kafka.InitKafka(cfg)
	if err != nil {
		slog.Error("kafka init failed", "error", err)
		os.Exit(1)
	}
	if kafkaBundle == nil {
		slog.Info("KAFKA_BROKERS is empty, events are disabled")
	}

	// ------------------------
	// Services, workers, cron
	// ------------------------
	client := api.NewWeatherClient(cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	b := bootstrap.InitBootstrap(store, forecastStore, client, kafkaBundle)

	workers.StartAllWorkers(ctx, b.Services.Weather, kafkaBundle)
	bootstrap.StartCronJobs(ctx, store, b.Services.Weather, cfg.RefreshInterval)

	// ------------------------
	// Server
	// ------------------------
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           bootstrap.InitRoutes(b.Handlers, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	stopped := bootstrap.GracefulShutdown(srv, cancel, redisClient, kafkaBundle)

	slog.Info("server started", "port", cfg.Port, "db_driver", cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	// ListenAndServe возвращается сразу после Shutdown; ждём, пока дойдут запросы
	<-stopped
	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (repositories.Store, func(), error) {
	if cfg.DBDriver == config.DriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		return repositories.NewMemoryStore(), func() {}, nil
	}

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, conn, cfg.DBDriver); err != nil {
		_ = db.Close(conn)
		return nil, nil, err
	}

	closeFn := func() {
		if err := db.Close(conn); err != nil {
			slog.Error("db close error", "error", err)
		}
	}
	return repositories.NewSQLStore(conn), closeFn, nil
}
