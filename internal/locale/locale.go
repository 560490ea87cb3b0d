// Package locale provides the supported UI languages and small
// localization helpers shared by the services.
package locale

import "time"

// Language is a supported UI language tag.
type Language string

const (
	// English is the default language.
	English Language = "en"

	// Russian is the secondary supported language.
	Russian Language = "ru"
)

// Parse returns the Language for a raw tag, defaulting to English for
// anything unrecognized.
func Parse(s string) Language {
	if Language(s) == Russian {
		return Russian
	}
	return English
}

// IsRussian reports whether the language is Russian.
func (l Language) IsRussian() bool {
	return l == Russian
}

// Pick returns the Russian string when the language is Russian, otherwise
// the English one.
func (l Language) Pick(en, ru string) string {
	if l.IsRussian() {
		return ru
	}
	return en
}

// Short weekday names per language, indexed by time.Weekday (Sunday = 0).
var weekdaysEN = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
var weekdaysRU = [7]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}

// WeekdayShort returns the localized short weekday name for t.
func WeekdayShort(t time.Time, lang Language) string {
	if lang.IsRussian() {
		return weekdaysRU[t.Weekday()]
	}
	return weekdaysEN[t.Weekday()]
}
