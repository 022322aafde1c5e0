package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-info/internal/apperrors"
	"weather-info/internal/models"
)

const (
	DefaultWeatherAPIURL = "https://api.open-meteo.com"
	hourlyFields         = "temperature_2m,relativehumidity_2m,pressure_msl,windspeed_10m,precipitation"
	maxBodySize          = 1 << 20
)

// WeatherClient: клиент Open-Meteo. Один запрос на вызов, без ретраев.
type WeatherClient struct {
	baseURL string
	http    *http.Client
}

func NewWeatherClient(baseURL string, timeout time.Duration) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeatherClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Timezone       string  `json:"timezone"`
	CurrentWeather *struct {
		Time        string  `json:"time"`
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
	Hourly *struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Humidity      []float64 `json:"relativehumidity_2m"`
		Pressure      []float64 `json:"pressure_msl"`
		WindSpeed     []float64 `json:"windspeed_10m"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// FetchForecast возвращает текущую погоду и почасовой прогноз на сегодня для точки.
func (c *WeatherClient) FetchForecast(ctx context.Context, latitude, longitude float64) (*models.Forecast, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("hourly", hourlyFields)
	q.Set("forecast_days", "1")
	q.Set("timezone", "auto")
	apiURL := c.baseURL + "/v1/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Upstream(err, "weather provider unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, apperrors.Upstream(err, "weather provider: read response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		if errResp.Reason != "" {
			return nil, apperrors.Upstream(nil, "weather provider returned %d: %s", resp.StatusCode, errResp.Reason)
		}
		return nil, apperrors.Upstream(nil, "weather provider returned %d", resp.StatusCode)
	}

	var data forecastResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apperrors.Upstream(err, "weather provider: invalid JSON")
	}

	return toForecast(data)
}

func toForecast(data forecastResponse) (*models.Forecast, error) {
	if data.CurrentWeather == nil {
		return nil, apperrors.Upstream(nil, "current weather data unavailable")
	}

	f := &models.Forecast{
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		Timezone:    data.Timezone,
		CurrentTime: data.CurrentWeather.Time,
		Current: models.WeatherReading{
			Temperature: data.CurrentWeather.Temperature,
			WindSpeed:   data.CurrentWeather.WindSpeed,
		},
		FetchedAt: time.Now().UTC(),
	}

	if h := data.Hourly; h != nil {
		n := len(h.Time)
		if len(h.Temperature) != n || len(h.Humidity) != n || len(h.Pressure) != n ||
			len(h.WindSpeed) != n || len(h.Precipitation) != n {
			return nil, apperrors.Upstream(nil, "weather provider: hourly series length mismatch")
		}
		f.Hourly = make([]models.HourlySlot, 0, n)
		for i := 0; i < n; i++ {
			f.Hourly = append(f.Hourly, models.HourlySlot{
				Time:          h.Time[i],
				Temperature:   h.Temperature[i],
				Humidity:      h.Humidity[i],
				WindSpeed:     h.WindSpeed[i],
				Pressure:      h.Pressure[i],
				Precipitation: h.Precipitation[i],
			})
		}
	}

	// Давление берём из часового ряда: текущий час, иначе первое значение.
	if slot, ok := f.CurrentSlot(); ok {
		f.Current.Pressure = slot.Pressure
	} else if len(f.Hourly) > 0 {
		f.Current.Pressure = f.Hourly[0].Pressure
	}

	return f, nil
}
