package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-info/internal/kafka"
)

const shutdownTimeout = 10 * time.Second

// GracefulShutdown ждёт SIGINT/SIGTERM, останавливает фоновые задачи и сервер.
// Возвращённый канал закрывается, когда остановка полностью завершена:
// main должен дождаться его, прежде чем закрывать БД и выходить.
func GracefulShutdown(srv *http.Server, cancel context.CancelFunc, redisClient *redis.Client, kafkaBundle *kafka.KafkaBundle) <-chan struct{} {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	return shutdownOnSignal(sig, shutdownTimeout, srv, cancel, redisClient, kafkaBundle)
}

func shutdownOnSignal(
	sig <-chan os.Signal,
	timeout time.Duration,
	srv *http.Server,
	cancel context.CancelFunc,
	redisClient *redis.Client,
	kafkaBundle *kafka.KafkaBundle,
) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s := <-sig

		slog.Info("shutting down gracefully", "signal", s.String())
		cancel()

		ctx, stop := context.WithTimeout(context.Background(), timeout)
		defer stop()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		kafkaBundle.Close()

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				slog.Error("redis close error", "error", err)
			}
		}
	}()
	return done
}
