package models

import "time"

// WeatherReading: погодные условия в точке, не сохраняется.
type WeatherReading struct {
	Temperature   float64  `json:"temperature"`   // °C
	WindSpeed     float64  `json:"wind_speed"`    // km/h
	Pressure      float64  `json:"pressure"`      // hPa
	Humidity      *float64 `json:"humidity,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
}

// HourlySlot: один час прогноза, время локальное для точки.
type HourlySlot struct {
	Time          string  `json:"time"` // 2006-01-02T15:04
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	Pressure      float64 `json:"pressure"`
	Precipitation float64 `json:"precipitation"`
}

// Clock возвращает часть HH:MM.
func (s HourlySlot) Clock() string {
	if len(s.Time) >= 16 {
		return s.Time[11:16]
	}
	return s.Time
}

func (s HourlySlot) Reading() WeatherReading {
	humidity, precipitation := s.Humidity, s.Precipitation
	return WeatherReading{
		Temperature:   s.Temperature,
		WindSpeed:     s.WindSpeed,
		Pressure:      s.Pressure,
		Humidity:      &humidity,
		Precipitation: &precipitation,
	}
}

type Forecast struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Timezone  string         `json:"timezone"`
	Current   WeatherReading `json:"current"`
	// CurrentTime: время Current от провайдера, формат как у HourlySlot.Time.
	CurrentTime string       `json:"current_time"`
	Hourly      []HourlySlot `json:"hourly"`
	FetchedAt   time.Time    `json:"fetched_at"`
}

// SlotAt ищет слот со временем hhmm.
func (f *Forecast) SlotAt(hhmm string) (HourlySlot, bool) {
	for _, s := range f.Hourly {
		if s.Clock() == hhmm {
			return s, true
		}
	}
	return HourlySlot{}, false
}

// CurrentSlot: слот текущего часа (CurrentTime с точностью до часа).
func (f *Forecast) CurrentSlot() (HourlySlot, bool) {
	if len(f.CurrentTime) < 13 {
		return HourlySlot{}, false
	}
	hour := f.CurrentTime[:13]
	for _, s := range f.Hourly {
		if len(s.Time) >= 13 && s.Time[:13] == hour {
			return s, true
		}
	}
	return HourlySlot{}, false
}
