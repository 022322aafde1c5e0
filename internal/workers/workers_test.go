package workers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"

	"weather-info/internal/models"
)

type fakeRefresher struct {
	mu     sync.Mutex
	cities []models.City
	err    error
}

func (f *fakeRefresher) RefreshCity(_ context.Context, city models.City) (*models.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.cities = append(f.cities, city)
	return &models.Forecast{Hourly: []models.HourlySlot{{Time: "2024-05-01T10:00"}}}, nil
}

func (f *fakeRefresher) refreshed() []models.City {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.City(nil), f.cities...)
}

func cityEvent(t *testing.T, city models.City) []byte {
	t.Helper()
	data, err := json.Marshal(models.NewCityCreated(city))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestForecastWorkerHandle(t *testing.T) {
	r := &fakeRefresher{}
	w := NewForecastWorker(nil, r)
	moscow := models.City{ID: 7, Name: "Moscow", Latitude: 55.75, Longitude: 37.61}

	if err := w.Handle(context.Background(), cityEvent(t, moscow)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	got := r.refreshed()
	if len(got) != 1 || got[0] != moscow {
		t.Fatalf("refreshed=%v want=[%v]", got, moscow)
	}

	if err := w.Handle(context.Background(), []byte("{")); err == nil {
		t.Fatal("want error for broken json")
	}
	if err := w.Handle(context.Background(), cityEvent(t, models.City{Name: "NoID"})); err == nil {
		t.Fatal("want error for event without city id")
	}

	r.err = errors.New("upstream down")
	if err := w.Handle(context.Background(), cityEvent(t, moscow)); err == nil {
		t.Fatal("want refresher error")
	}
}

func TestRoute(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 3)

	Route(ctx, cityEvent(t, models.City{ID: 1, Name: "Oslo"}), ch)
	Route(ctx, []byte(`{"type":"user.created"}`), ch)
	Route(ctx, []byte(`not json`), ch)

	if len(ch) != 1 {
		t.Fatalf("routed=%d want=1", len(ch))
	}
}

func TestRouteStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := cityEvent(t, models.City{ID: 1, Name: "Oslo"})
	done := make(chan struct{})
	go func() {
		Route(ctx, msg, make(chan []byte))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Route blocked on a full channel after cancel")
	}
}

func TestForecastWorkerStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeRefresher{}
	ch := make(chan []byte, 1)
	w := NewForecastWorker(ch, r)
	go w.Start(ctx)

	ch <- cityEvent(t, models.City{ID: 3, Name: "Kazan"})

	err := retry.Do(func() error {
		if len(r.refreshed()) == 0 {
			return errors.New("not processed yet")
		}
		return nil
	}, retry.Attempts(40), retry.Delay(50*time.Millisecond), retry.DelayType(retry.FixedDelay))
	if err != nil {
		t.Fatalf("worker did not process the event: %v", err)
	}
}
