// Package airquality provides air quality classification, normalization,
// and cached data access.
package airquality

import (
	"errors"
	"time"

	"github.com/cleansky/cleansky/internal/locale"
)

// Provider errors.
var (
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
)

// Level is a severity bucket for an overall AQI value. The six levels are
// totally ordered by increasing AQI.
type Level string

const (
	LevelGood               Level = "Good"
	LevelModerate           Level = "Moderate"
	LevelUnhealthySensitive Level = "Unhealthy for Sensitive Groups"
	LevelUnhealthy          Level = "Unhealthy"
	LevelVeryUnhealthy      Level = "Very Unhealthy"
	LevelHazardous          Level = "Hazardous"
)

// ClassifyAQI maps an AQI value to its severity level. The breakpoints are
// the US EPA ones (50/100/150/200/300). Values are not clamped: anything at
// or below 50, including negatives, is Good.
func ClassifyAQI(aqi int) Level {
	switch {
	case aqi <= 50:
		return LevelGood
	case aqi <= 100:
		return LevelModerate
	case aqi <= 150:
		return LevelUnhealthySensitive
	case aqi <= 200:
		return LevelUnhealthy
	case aqi <= 300:
		return LevelVeryUnhealthy
	default:
		return LevelHazardous
	}
}

// Localized returns the display string for the level in the given language.
func (l Level) Localized(lang locale.Language) string {
	if !lang.IsRussian() {
		return string(l)
	}
	switch l {
	case LevelGood:
		return "Хороший"
	case LevelModerate:
		return "Умеренный"
	case LevelUnhealthySensitive:
		return "Вредный для уязвимых"
	case LevelUnhealthy:
		return "Вредный"
	case LevelVeryUnhealthy:
		return "Очень вредный"
	case LevelHazardous:
		return "Опасный"
	default:
		return string(l)
	}
}

// Severity is a coarse per-pollutant tag, independent of the overall Level.
type Severity string

const (
	SeverityGood     Severity = "good"
	SeverityModerate Severity = "moderate"
	SeverityBad      Severity = "bad"
)

// PollutantKey identifies one of the six measured species.
type PollutantKey string

const (
	KeyPM25 PollutantKey = "pm25"
	KeyPM10 PollutantKey = "pm10"
	KeyNO2  PollutantKey = "no2"
	KeySO2  PollutantKey = "so2"
	KeyCO   PollutantKey = "co"
	KeyO3   PollutantKey = "o3"
)

// PollutantKeys lists the six species in display order.
var PollutantKeys = []PollutantKey{KeyPM25, KeyPM10, KeyNO2, KeySO2, KeyCO, KeyO3}

// Pollutant is one measured species reading.
type Pollutant struct {
	Name     string
	Value    float64
	Unit     string
	Severity Severity
}

// HistoryPoint is one downsampled point of the AQI time series.
type HistoryPoint struct {
	// Time is the HH:MM portion of the hourly timestamp.
	Time string

	// Value is the AQI at that hour.
	Value int
}

// Snapshot is the normalized air quality record for one fetch cycle. It is
// immutable once constructed; a later fetch supersedes it rather than
// mutating it.
type Snapshot struct {
	AQI               int
	Level             Level
	DominantPollutant string
	LocationLabel     string
	Pollutants        map[PollutantKey]Pollutant
	History           []HistoryPoint
	FetchedAt         time.Time
}

// DominantPollutant returns the label of whichever of the three values is
// numerically largest. Ties resolve in priority order PM2.5 > PM10 > NO2.
func DominantPollutant(pm25, pm10, no2 float64) string {
	max := pm25
	if pm10 > max {
		max = pm10
	}
	if no2 > max {
		max = no2
	}
	switch max {
	case pm25:
		return "PM2.5"
	case pm10:
		return "PM10"
	default:
		return "NO2"
	}
}

// Coarse severity tags use hand-picked thresholds and deliberately do not
// track the overall level.

// ClassifyPM25 tags a PM2.5 reading.
func ClassifyPM25(v float64) Severity {
	if v > 35 {
		return SeverityBad
	}
	return SeverityGood
}

// ClassifyPM10 tags a PM10 reading.
func ClassifyPM10(v float64) Severity {
	if v > 150 {
		return SeverityBad
	}
	return SeverityModerate
}
