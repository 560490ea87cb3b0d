// Package notification derives threshold alerts from air quality and
// weather snapshots.
package notification

import (
	"strconv"
	"strings"
	"time"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/locale"
	"github.com/cleansky/cleansky/internal/weather"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Notification is one derived alert.
type Notification struct {
	ID           string
	Title        string
	Message      string
	Severity     Severity
	RelativeTime string
}

// AQIWarningThreshold is the AQI above which a pollution warning is raised.
const AQIWarningThreshold = 100

// rainMarkers are matched case-insensitively against the weather condition
// in both languages regardless of the requested one, so a cached condition
// string from either locale still triggers the alert.
var rainMarkers = []string{"rain", "дождь", "thunderstorm", "гроза"}

// Derive computes the notification list for one dashboard load. The result
// is ordered: pollution warning first if any, rain advisory next if any,
// then the always-present sync confirmation. IDs are derived from now so a
// reload produces a fresh set.
func Derive(aq *airquality.Snapshot, w *weather.Snapshot, lang locale.Language, now time.Time) []Notification {
	base := strconv.FormatInt(now.UnixMilli(), 10)
	notifications := make([]Notification, 0, 3)

	if aq != nil && aq.AQI > AQIWarningThreshold {
		notifications = append(notifications, Notification{
			ID:           base + "1",
			Title:        lang.Pick("High Pollution", "Высокое загрязнение"),
			Message:      lang.Pick("Wear a mask outdoors.", "Наденьте маску на улице."),
			Severity:     SeverityWarning,
			RelativeTime: lang.Pick("Now", "Сейчас"),
		})
	}

	if w != nil && conditionSuggestsRain(w.Condition) {
		notifications = append(notifications, Notification{
			ID:           base + "2",
			Title:        lang.Pick("Rain Forecast", "Прогноз дождя"),
			Message:      lang.Pick("Take an umbrella.", "Возьмите зонт."),
			Severity:     SeverityInfo,
			RelativeTime: lang.Pick("Now", "Сейчас"),
		})
	}

	notifications = append(notifications, Notification{
		ID:           base + "3",
		Title:        lang.Pick("System Update", "Обновление системы"),
		Message:      lang.Pick("NASA data sync complete.", "Синхронизация с NASA завершена."),
		Severity:     SeveritySuccess,
		RelativeTime: lang.Pick("1m ago", "1 мин назад"),
	})

	return notifications
}

func conditionSuggestsRain(condition string) bool {
	lower := strings.ToLower(condition)
	for _, marker := range rainMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
