package bootstrap

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weather-info/internal/api"
	"weather-info/internal/forecasts"
	"weather-info/internal/repositories"
)

func newTestRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	b := InitBootstrap(
		repositories.NewMemoryStore(),
		forecasts.NewMemoryStore(time.Hour),
		api.NewWeatherClient(upstream.URL, time.Second),
		nil,
	)
	var logs bytes.Buffer
	return InitRoutes(b.Handlers, slog.New(slog.NewJSONHandler(&logs, nil))), &logs
}

func TestRoutesRegistered(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/cities", "", http.StatusOK},
		{http.MethodPost, "/cities", `{"name":"Oslo","latitude":59.9,"longitude":10.7}`, http.StatusCreated},
		{http.MethodPost, "/users", `{"username":"bob"}`, http.StatusCreated},
		{http.MethodPost, "/users/1/cities/add", `{"name":"Oslo","latitude":59.9,"longitude":10.7}`, http.StatusOK},
		{http.MethodGet, "/users/1/cities", "", http.StatusOK},
		{http.MethodGet, "/weather/current?latitude=1&longitude=1", "", http.StatusBadGateway},
		{http.MethodGet, "/weather/current-conditions?latitude=100&longitude=1", "", http.StatusBadRequest},
		{http.MethodGet, "/weather/Unknown", "", http.StatusNotFound},
		{http.MethodGet, "/users/1/weather?city_name=Paris", "", http.StatusNotFound},
		{http.MethodDelete, "/cities", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s %s: status=%d want=%d body=%s", tt.method, tt.target, rec.Code, tt.want, rec.Body.String())
		}
	}
}

func TestRoutesLogRequests(t *testing.T) {
	router, logs := newTestRouter(t)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !strings.Contains(logs.String(), `"path":"/healthz"`) {
		t.Fatalf("request not logged: %s", logs.String())
	}
}
