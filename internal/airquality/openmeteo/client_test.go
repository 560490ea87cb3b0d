package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/geo"
)

func hourlyFixture(hours int) (times []string, values []float64) {
	for i := 0; i < hours; i++ {
		times = append(times, fmt.Sprintf("2024-01-15T%02d:00", i%24))
		values = append(values, float64(40+i))
	}
	return times, values
}

func fixtureResponse(hours int) string {
	times, values := hourlyFixture(hours)

	var sb strings.Builder
	sb.WriteString(`{"current":{"us_aqi":72,"pm10":48.2,"pm2_5":38.5,` +
		`"carbon_monoxide":233,"nitrogen_dioxide":14.1,"sulphur_dioxide":3.2,"ozone":61},`)
	sb.WriteString(`"hourly":{"time":[`)
	for i, ts := range times {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%q", ts)
	}
	sb.WriteString(`],"us_aqi":[`)
	for i, v := range values {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteString(`]}}`)
	return sb.String()
}

func TestClient_FetchSnapshot(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fixtureResponse(48))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	loc := geo.Coordinate{Lat: 41.2995, Lon: 69.2401, Name: "Tashkent"}
	snapshot, err := client.FetchSnapshot(context.Background(), loc)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Contains(t, gotQuery, "latitude=41.2995")
	assert.Contains(t, gotQuery, "longitude=69.2401")
	assert.Contains(t, gotQuery, "hourly=us_aqi")
	assert.Contains(t, gotQuery, "past_days=1")

	assert.Equal(t, 72, snapshot.AQI)
	assert.Equal(t, airquality.LevelModerate, snapshot.Level)
	assert.Equal(t, "PM10", snapshot.DominantPollutant)
	assert.Equal(t, "Tashkent", snapshot.LocationLabel)
	assert.False(t, snapshot.FetchedAt.IsZero())

	require.Len(t, snapshot.Pollutants, 6)
	pm25 := snapshot.Pollutants[airquality.KeyPM25]
	assert.Equal(t, "PM2.5", pm25.Name)
	assert.InDelta(t, 38.5, pm25.Value, 0.001)
	assert.Equal(t, "µg/m³", pm25.Unit)
	assert.Equal(t, airquality.SeverityBad, pm25.Severity)
	assert.Equal(t, airquality.SeverityModerate, snapshot.Pollutants[airquality.KeyCO].Severity)
	assert.Equal(t, airquality.SeverityGood, snapshot.Pollutants[airquality.KeyO3].Severity)
}

func TestClient_FetchSnapshot_HistoryDownsampling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 48 hourly entries; only the first 24 matter.
		fmt.Fprint(w, fixtureResponse(48))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	snapshot, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401})
	require.NoError(t, err)

	// Indices 0,3,...,21 of the first 24 entries survive.
	require.Len(t, snapshot.History, 8)
	assert.Equal(t, "00:00", snapshot.History[0].Time)
	assert.Equal(t, 40, snapshot.History[0].Value)
	assert.Equal(t, "03:00", snapshot.History[1].Time)
	assert.Equal(t, 43, snapshot.History[1].Value)
	assert.Equal(t, "21:00", snapshot.History[7].Time)
	assert.Equal(t, 61, snapshot.History[7].Value)
}

func TestClient_FetchSnapshot_ShortSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fixtureResponse(5))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	snapshot, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401})
	require.NoError(t, err)

	require.Len(t, snapshot.History, 2)
	assert.Equal(t, "00:00", snapshot.History[0].Time)
	assert.Equal(t, "03:00", snapshot.History[1].Time)
}

func TestClient_FetchSnapshot_MissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"current":{"us_aqi":31},"hourly":{"time":[],"us_aqi":[]}}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	snapshot, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401})
	require.NoError(t, err)

	assert.Equal(t, 31, snapshot.AQI)
	assert.Equal(t, airquality.LevelGood, snapshot.Level)
	assert.Equal(t, "PM2.5", snapshot.DominantPollutant, "all-zero readings resolve to PM2.5")
	assert.Zero(t, snapshot.Pollutants[airquality.KeyPM10].Value)
	assert.Empty(t, snapshot.History)
}

func TestClient_FetchSnapshot_FallbackLocationLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fixtureResponse(24))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	loc := geo.Coordinate{Lat: 41.2995, Lon: 69.2401, Name: geo.SentinelCurrentLocation}
	snapshot, err := client.FetchSnapshot(context.Background(), loc)
	require.NoError(t, err)

	assert.Equal(t, "41.30°N, 69.24°E", snapshot.LocationLabel)
}

func TestClient_FetchSnapshot_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	_, err := client.FetchSnapshot(context.Background(), geo.Coordinate{Lat: 41.2995, Lon: 69.2401})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}
