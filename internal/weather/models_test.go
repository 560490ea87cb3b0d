package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleansky/cleansky/internal/locale"
	"github.com/cleansky/cleansky/internal/weather"
)

func TestClassifyCode(t *testing.T) {
	tests := []struct {
		code   int
		wantEN string
		wantRU string
	}{
		{0, "Clear Sky", "Ясно"},
		{1, "Partly Cloudy", "Перем. облачность"},
		{3, "Partly Cloudy", "Перем. облачность"},
		{45, "Foggy", "Туман"},
		{48, "Foggy", "Туман"},
		{51, "Rain", "Дождь"},
		{67, "Rain", "Дождь"},
		{71, "Snow", "Снег"},
		{77, "Snow", "Снег"},
		{95, "Thunderstorm", "Гроза"},
		{99, "Thunderstorm", "Гроза"},
		// Gaps between the ranges fall through to Cloudy.
		{4, "Cloudy", "Облачно"},
		{50, "Cloudy", "Облачно"},
		{80, "Cloudy", "Облачно"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantEN, weather.ClassifyCode(tt.code, locale.English), "code=%d en", tt.code)
		assert.Equal(t, tt.wantRU, weather.ClassifyCode(tt.code, locale.Russian), "code=%d ru", tt.code)
	}
}
