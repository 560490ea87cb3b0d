// Package weather provides weather condition classification and cached
// forecast access.
package weather

import (
	"errors"
	"time"

	"github.com/cleansky/cleansky/internal/locale"
)

// Provider errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// DayForecast is one day of the short-range forecast.
type DayForecast struct {
	// Day is the localized short weekday name ("Mon", "пн").
	Day string

	// TempMax and TempMin are daily extremes in whole °C.
	TempMax int
	TempMin int
}

// Snapshot is the normalized weather record for one fetch cycle.
type Snapshot struct {
	TemperatureC int
	Condition    string
	HumidityPct  int
	WindSpeedKmh float64
	Forecast     []DayForecast
	FetchedAt    time.Time
}

// ClassifyCode maps a WMO weather interpretation code to a localized
// condition string. Unlisted codes read as overcast.
func ClassifyCode(code int, lang locale.Language) string {
	switch {
	case code == 0:
		return lang.Pick("Clear Sky", "Ясно")
	case code >= 1 && code <= 3:
		return lang.Pick("Partly Cloudy", "Перем. облачность")
	case code >= 45 && code <= 48:
		return lang.Pick("Foggy", "Туман")
	case code >= 51 && code <= 67:
		return lang.Pick("Rain", "Дождь")
	case code >= 71 && code <= 77:
		return lang.Pick("Snow", "Снег")
	case code >= 95:
		return lang.Pick("Thunderstorm", "Гроза")
	default:
		return lang.Pick("Cloudy", "Облачно")
	}
}
