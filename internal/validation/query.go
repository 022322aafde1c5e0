package validation

import (
	"fmt"
	"strings"
	"time"

	"weather-info/internal/apperrors"
)

const (
	ParamTemperature   = "temperature"
	ParamWindSpeed     = "wind_speed"
	ParamPressure      = "pressure"
	ParamHumidity      = "humidity"
	ParamPrecipitation = "precipitation"
)

// DefaultParams is used when the caller does not name any field.
var DefaultParams = []string{ParamTemperature, ParamWindSpeed, ParamPressure, ParamHumidity, ParamPrecipitation}

var knownParams = map[string]bool{
	ParamTemperature:   true,
	ParamWindSpeed:     true,
	ParamPressure:      true,
	ParamHumidity:      true,
	ParamPrecipitation: true,
}

// ParseParams splits a comma separated field list. Order is kept, duplicates dropped.
func ParseParams(csv string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(csv, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		if !knownParams[p] {
			return nil, apperrors.Validation("unknown parameter %q, allowed: %s", p, strings.Join(DefaultParams, ", "))
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultParams...), nil
	}
	return out, nil
}

// ParseSlotTime parses HH:MM and rounds it to the nearest hour:
// 10:07 -> 10:00, 10:37 -> 11:00, 23:45 -> 00:00.
func ParseSlotTime(s string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", apperrors.Validation("invalid time %q, expected HH:MM", s)
	}
	hour := t.Hour()
	if t.Minute() >= 30 {
		hour = (hour + 1) % 24
	}
	return fmt.Sprintf("%02d:00", hour), nil
}
