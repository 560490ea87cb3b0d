// Package openmeteo provides the Open-Meteo air quality provider.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/provider/resilience"
)

const (
	// ProviderName identifies this air quality provider.
	ProviderName = "openmeteo-air-quality"

	// DefaultBaseURL is the Open-Meteo air quality API base URL.
	DefaultBaseURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	// historyHours is how many hourly entries feed the AQI time series.
	historyHours = 24

	// historyStride keeps every n-th point of the hourly series.
	historyStride = 3
)

// ClientConfig holds configuration for the Open-Meteo air quality client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to Open-Meteo).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo air quality API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Open-Meteo air quality client.
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

// FetchSnapshot fetches current readings plus the hourly AQI series for a
// coordinate and normalizes them into a Snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, loc geo.Coordinate) (*airquality.Snapshot, error) {
	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f"+
		"&current=us_aqi,pm10,pm2_5,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone"+
		"&hourly=us_aqi&timezone=auto&past_days=1&forecast_days=1",
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

	var omResp airQualityResponse
	if err := json.NewDecoder(resp.Body).Decode(&omResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toSnapshot(&omResp, loc), nil
}

// toSnapshot converts an Open-Meteo response to the domain model. Missing
// upstream fields decode to zero values and propagate into the snapshot;
// degraded output is accepted over a failed fetch.
func (c *Client) toSnapshot(resp *airQualityResponse, loc geo.Coordinate) *airquality.Snapshot {
	cur := resp.Current
	aqi := int(math.Round(cur.USAQI))

	const unit = "µg/m³"
	pollutants := map[airquality.PollutantKey]airquality.Pollutant{
		airquality.KeyPM25: {Name: "PM2.5", Value: cur.PM25, Unit: unit, Severity: airquality.ClassifyPM25(cur.PM25)},
		airquality.KeyPM10: {Name: "PM10", Value: cur.PM10, Unit: unit, Severity: airquality.ClassifyPM10(cur.PM10)},
		airquality.KeyNO2:  {Name: "NO2", Value: cur.NitrogenDioxide, Unit: unit, Severity: airquality.SeverityGood},
		airquality.KeySO2:  {Name: "SO2", Value: cur.SulphurDioxide, Unit: unit, Severity: airquality.SeverityGood},
		airquality.KeyCO:   {Name: "CO", Value: cur.CarbonMonoxide, Unit: unit, Severity: airquality.SeverityModerate},
		airquality.KeyO3:   {Name: "O3", Value: cur.Ozone, Unit: unit, Severity: airquality.SeverityGood},
	}

	return &airquality.Snapshot{
		AQI:               aqi,
		Level:             airquality.ClassifyAQI(aqi),
		DominantPollutant: airquality.DominantPollutant(cur.PM25, cur.PM10, cur.NitrogenDioxide),
		LocationLabel:     loc.DisplayLabel(),
		Pollutants:        pollutants,
		History:           buildHistory(resp.Hourly.Time, resp.Hourly.USAQI),
		FetchedAt:         time.Now(),
	}
}

// buildHistory takes the first 24 hourly entries, renders each timestamp as
// HH:MM, and keeps every third point (indices 0,3,...,21). The stride is a
// fixed design constant.
func buildHistory(times []string, values []float64) []airquality.HistoryPoint {
	n := len(times)
	if n > historyHours {
		n = historyHours
	}

	history := make([]airquality.HistoryPoint, 0, (n+historyStride-1)/historyStride)
	for i := 0; i < n; i += historyStride {
		value := 0
		if i < len(values) {
			value = int(math.Round(values[i]))
		}
		history = append(history, airquality.HistoryPoint{
			Time:  timeOfDay(times[i]),
			Value: value,
		})
	}
	return history
}

// timeOfDay extracts the HH:MM portion of an ISO 8601 timestamp such as
// "2024-01-15T14:00".
func timeOfDay(iso string) string {
	if idx := strings.IndexByte(iso, 'T'); idx >= 0 && len(iso) >= idx+6 {
		return iso[idx+1 : idx+6]
	}
	return iso
}

// Open-Meteo air quality API response structures.

type airQualityResponse struct {
	Current struct {
		USAQI           float64 `json:"us_aqi"`
		PM10            float64 `json:"pm10"`
		PM25            float64 `json:"pm2_5"`
		CarbonMonoxide  float64 `json:"carbon_monoxide"`
		NitrogenDioxide float64 `json:"nitrogen_dioxide"`
		SulphurDioxide  float64 `json:"sulphur_dioxide"`
		Ozone           float64 `json:"ozone"`
	} `json:"current"`
	Hourly struct {
		Time  []string  `json:"time"`
		USAQI []float64 `json:"us_aqi"`
	} `json:"hourly"`
}
