package forecasts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-info/internal/models"
)

// RedisStore: один хеш на город, поле: "HH:MM", значение: JSON слота.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: client, ttl: ttl}
}

func Key(cityID int64) string {
	return "forecast:" + strconv.FormatInt(cityID, 10)
}

func (s *RedisStore) Save(ctx context.Context, cityID int64, forecast *models.Forecast) error {
	if len(forecast.Hourly) == 0 {
		return nil
	}

	fields := make(map[string]any, len(forecast.Hourly))
	for _, slot := range forecast.Hourly {
		data, err := json.Marshal(slot)
		if err != nil {
			return fmt.Errorf("marshal slot %s: %w", slot.Time, err)
		}
		fields[slot.Clock()] = data
	}

	key := Key(cityID)
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Slot(ctx context.Context, cityID int64, clock string) (models.HourlySlot, error) {
	key := Key(cityID)
	data, err := s.redis.HGet(ctx, key, clock).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.HourlySlot{}, ErrMissing
	}
	if err != nil {
		return models.HourlySlot{}, fmt.Errorf("redis get %s/%s: %w", key, clock, err)
	}

	var slot models.HourlySlot
	if err := json.Unmarshal(data, &slot); err != nil {
		return models.HourlySlot{}, fmt.Errorf("unmarshal %s/%s: %w", key, clock, err)
	}
	return slot, nil
}
