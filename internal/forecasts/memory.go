package forecasts

import (
	"context"
	"sync"
	"time"

	"weather-info/internal/models"
)

type memoryEntry struct {
	slots   map[string]models.HourlySlot
	expires time.Time
}

type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int64]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, cityID int64, forecast *models.Forecast) error {
	if len(forecast.Hourly) == 0 {
		return nil
	}
	slots := make(map[string]models.HourlySlot, len(forecast.Hourly))
	for _, slot := range forecast.Hourly {
		slots[slot.Clock()] = slot
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[cityID] = memoryEntry{slots: slots, expires: s.now().Add(s.ttl)}
	s.evictLocked()
	return nil
}

func (s *MemoryStore) Slot(_ context.Context, cityID int64, clock string) (models.HourlySlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[cityID]
	if !ok || !s.now().Before(e.expires) {
		return models.HourlySlot{}, ErrMissing
	}
	slot, ok := e.slots[clock]
	if !ok {
		return models.HourlySlot{}, ErrMissing
	}
	return slot, nil
}

func (s *MemoryStore) evictLocked() {
	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
		}
	}
}
