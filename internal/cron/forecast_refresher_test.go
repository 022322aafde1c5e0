package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"

	"weather-info/internal/models"
)

type staticCities struct {
	cities []models.City
	err    error
}

func (s staticCities) ListCities(context.Context) ([]models.City, error) {
	return s.cities, s.err
}

type countingRefresher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newCountingRefresher(fail ...string) *countingRefresher {
	r := &countingRefresher{calls: map[string]int{}, fail: map[string]bool{}}
	for _, name := range fail {
		r.fail[name] = true
	}
	return r
}

func (r *countingRefresher) RefreshCity(_ context.Context, city models.City) (*models.Forecast, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[city.Name]++
	if r.fail[city.Name] {
		return nil, errors.New("upstream unavailable")
	}
	return &models.Forecast{}, nil
}

func (r *countingRefresher) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

var testCities = []models.City{
	{ID: 1, Name: "Moscow"},
	{ID: 2, Name: "Kazan"},
	{ID: 3, Name: "Oslo"},
}

func TestRunOnceSkipsFailures(t *testing.T) {
	r := newCountingRefresher("Kazan")
	p := NewForecastRefresher(staticCities{cities: testCities}, r, time.Minute)

	n, err := p.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if n != 2 {
		t.Fatalf("refreshed=%d want=2", n)
	}
	for _, c := range testCities {
		if r.count(c.Name) != 1 {
			t.Fatalf("%s refreshed %d times, want 1", c.Name, r.count(c.Name))
		}
	}
}

func TestRunOnceListError(t *testing.T) {
	p := NewForecastRefresher(staticCities{err: errors.New("db down")}, newCountingRefresher(), time.Minute)
	if _, err := p.RunOnce(context.Background()); err == nil {
		t.Fatal("want list error")
	}
}

func TestStartTicksUntilCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := newCountingRefresher()
	p := NewForecastRefresher(staticCities{cities: testCities[:1]}, r, 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	err := retry.Do(func() error {
		if r.count("Moscow") < 2 {
			return errors.New("waiting for ticks")
		}
		return nil
	}, retry.Attempts(50), retry.Delay(20*time.Millisecond), retry.DelayType(retry.FixedDelay))
	if err != nil {
		t.Fatalf("refresher did not tick: %v", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
