package forecasts

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-info/internal/models"
)

func sampleForecast() *models.Forecast {
	return &models.Forecast{
		Timezone: "Europe/Moscow",
		Hourly: []models.HourlySlot{
			{Time: "2024-11-05T12:00", Temperature: 3.9, Humidity: 81, WindSpeed: 10.2, Pressure: 1012.1},
			{Time: "2024-11-05T13:00", Temperature: 4.1, Humidity: 79, WindSpeed: 11.1, Pressure: 1012.6, Precipitation: 0.1},
		},
	}
}

// exerciseStore: одинаковые проверки для любой реализации Store.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Slot(ctx, 1, "13:00"); !errors.Is(err, ErrMissing) {
		t.Fatalf("empty store err=%v want ErrMissing", err)
	}

	if err := s.Save(ctx, 1, sampleForecast()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	slot, err := s.Slot(ctx, 1, "13:00")
	if err != nil {
		t.Fatalf("Slot: %v", err)
	}
	if slot.Temperature != 4.1 || slot.Precipitation != 0.1 || slot.Time != "2024-11-05T13:00" {
		t.Fatalf("slot=%+v", slot)
	}

	if _, err := s.Slot(ctx, 1, "15:00"); !errors.Is(err, ErrMissing) {
		t.Fatalf("unknown clock err=%v want ErrMissing", err)
	}
	if _, err := s.Slot(ctx, 2, "13:00"); !errors.Is(err, ErrMissing) {
		t.Fatalf("other city err=%v want ErrMissing", err)
	}

	// новый прогноз полностью заменяет старый
	replacement := &models.Forecast{Hourly: []models.HourlySlot{{Time: "2024-11-06T15:00", Temperature: -1}}}
	if err := s.Save(ctx, 1, replacement); err != nil {
		t.Fatalf("Save replacement: %v", err)
	}
	if _, err := s.Slot(ctx, 1, "13:00"); !errors.Is(err, ErrMissing) {
		t.Fatalf("stale slot survived replacement: %v", err)
	}
	if slot, err := s.Slot(ctx, 1, "15:00"); err != nil || slot.Temperature != -1 {
		t.Fatalf("slot=%+v err=%v", slot, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(24 * time.Hour)
	now := time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Save(context.Background(), 7, sampleForecast()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	now = now.Add(23 * time.Hour)
	if _, err := s.Slot(context.Background(), 7, "12:00"); err != nil {
		t.Fatalf("slot expired too early: %v", err)
	}
	now = now.Add(time.Hour)
	if _, err := s.Slot(context.Background(), 7, "12:00"); !errors.Is(err, ErrMissing) {
		t.Fatalf("err=%v want ErrMissing after ttl", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis недоступен: %v", err)
	}
	t.Cleanup(func() {
		rdb.Del(context.Background(), Key(1), Key(2))
	})

	s := NewRedisStore(rdb, time.Minute)
	exerciseStore(t, s)

	ttl, err := rdb.TTL(context.Background(), Key(1)).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl=%s want (0, 1m]", ttl)
	}
}
