// Package openmeteo provides the Open-Meteo weather forecast provider.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/locale"
	"github.com/cleansky/cleansky/internal/provider/resilience"
	"github.com/cleansky/cleansky/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openmeteo-forecast"

	// DefaultBaseURL is the Open-Meteo forecast API base URL.
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	// forecastDays is how many daily entries make the short-range forecast.
	forecastDays = 4
)

// ClientConfig holds configuration for the Open-Meteo forecast client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to Open-Meteo).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo forecast API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Open-Meteo forecast client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FetchSnapshot fetches current conditions and the daily forecast for a
// coordinate and normalizes them into a Snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, loc geo.Coordinate, lang locale.Language) (*weather.Snapshot, error) {
	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f"+
		"&current=temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"+
		"&daily=weather_code,temperature_2m_max,temperature_2m_min&timezone=auto",
		c.baseURL, loc.Lat, loc.Lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var omResp forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&omResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toSnapshot(&omResp, lang), nil
}

func (c *Client) toSnapshot(resp *forecastResponse, lang locale.Language) *weather.Snapshot {
	cur := resp.Current

	days := len(resp.Daily.Time)
	if days > forecastDays {
		days = forecastDays
	}

	forecast := make([]weather.DayForecast, 0, days)
	for i := 0; i < days; i++ {
		forecast = append(forecast, weather.DayForecast{
			Day:     dayName(resp.Daily.Time[i], lang),
			TempMax: roundAt(resp.Daily.TemperatureMax, i),
			TempMin: roundAt(resp.Daily.TemperatureMin, i),
		})
	}

	return &weather.Snapshot{
		TemperatureC: int(math.Round(cur.Temperature)),
		Condition:    weather.ClassifyCode(cur.WeatherCode, lang),
		HumidityPct:  cur.RelativeHumidity,
		WindSpeedKmh: cur.WindSpeed,
		Forecast:     forecast,
		FetchedAt:    time.Now(),
	}
}

// dayName parses a daily date stamp ("2024-01-15") into a localized short
// weekday name. Unparseable stamps pass through unchanged.
func dayName(date string, lang locale.Language) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return locale.WeekdayShort(t, lang)
}

func roundAt(values []float64, i int) int {
	if i >= len(values) {
		return 0
	}
	return int(math.Round(values[i]))
}

// Open-Meteo forecast API response structures.

type forecastResponse struct {
	Current struct {
		Temperature      float64 `json:"temperature_2m"`
		RelativeHumidity int     `json:"relative_humidity_2m"`
		WeatherCode      int     `json:"weather_code"`
		WindSpeed        float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time           []string  `json:"time"`
		WeatherCode    []int     `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}
