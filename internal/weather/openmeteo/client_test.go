package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/locale"
)

// Mon 2024-01-15 through Sun 2024-01-21.
const forecastFixture = `{
	"current": {
		"temperature_2m": 23.6,
		"relative_humidity_2m": 48,
		"weather_code": 61,
		"wind_speed_10m": 14.3
	},
	"daily": {
		"time": ["2024-01-15","2024-01-16","2024-01-17","2024-01-18","2024-01-19","2024-01-20","2024-01-21"],
		"weather_code": [61,3,0,71,95,2,1],
		"temperature_2m_max": [24.4,21.5,18.9,12.1,10.0,15.5,16.2],
		"temperature_2m_min": [14.6,12.4,9.5,3.8,1.2,6.6,7.1]
	}
}`

func TestClient_FetchSnapshot(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, forecastFixture)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	snapshot, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401}, locale.English)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "latitude=41.2995")
	assert.Contains(t, gotQuery, "daily=weather_code")

	assert.Equal(t, 24, snapshot.TemperatureC, "temperature rounds to the nearest degree")
	assert.Equal(t, "Rain", snapshot.Condition)
	assert.Equal(t, 48, snapshot.HumidityPct)
	assert.InDelta(t, 14.3, snapshot.WindSpeedKmh, 0.001)
	assert.False(t, snapshot.FetchedAt.IsZero())

	// Only the first four days survive.
	require.Len(t, snapshot.Forecast, 4)
	assert.Equal(t, "Mon", snapshot.Forecast[0].Day)
	assert.Equal(t, 24, snapshot.Forecast[0].TempMax)
	assert.Equal(t, 15, snapshot.Forecast[0].TempMin)
	assert.Equal(t, "Thu", snapshot.Forecast[3].Day)
	assert.Equal(t, 12, snapshot.Forecast[3].TempMax)
	assert.Equal(t, 4, snapshot.Forecast[3].TempMin)
}

func TestClient_FetchSnapshot_Russian(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, forecastFixture)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	snapshot, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401}, locale.Russian)
	require.NoError(t, err)

	assert.Equal(t, "Дождь", snapshot.Condition)
	require.Len(t, snapshot.Forecast, 4)
	assert.Equal(t, "пн", snapshot.Forecast[0].Day)
	assert.Equal(t, "чт", snapshot.Forecast[3].Day)
}

func TestClient_FetchSnapshot_ShortForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"current": {"temperature_2m": 5.4, "relative_humidity_2m": 70, "weather_code": 0, "wind_speed_10m": 3.1},
			"daily": {"time": ["2024-01-15","2024-01-16"], "weather_code": [0,1],
				"temperature_2m_max": [6.0,7.0], "temperature_2m_min": [-1.0,0.2]}
		}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	snapshot, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401}, locale.English)
	require.NoError(t, err)

	assert.Equal(t, "Clear Sky", snapshot.Condition)
	require.Len(t, snapshot.Forecast, 2)
	assert.Equal(t, -1, snapshot.Forecast[0].TempMin)
}

func TestClient_FetchSnapshot_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	_, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401}, locale.English)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}
