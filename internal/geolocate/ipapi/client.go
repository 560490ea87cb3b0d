// Package ipapi provides the ip-api.com geolocation provider.
package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/geolocate"
	"github.com/cleansky/cleansky/internal/provider/resilience"
)

const (
	// ProviderName identifies this geolocation provider.
	ProviderName = "ip-api"

	// DefaultBaseURL is the ip-api.com JSON endpoint.
	DefaultBaseURL = "http://ip-api.com/json"
)

// ClientConfig holds configuration for the ip-api client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to ip-api.com).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an ip-api.com geolocation client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new ip-api client.
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

// Locate resolves an IP address via ip-api.com. The resolved city becomes
// the coordinate name; when the service omits it the generic current
// location sentinel is used so display code falls back to coordinates.
func (c *Client) Locate(ctx context.Context, ip string) (geo.Coordinate, error) {
	url := fmt.Sprintf("%s/%s?fields=status,message,city,lat,lon", c.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var apiResp locateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return geo.Coordinate{}, fmt.Errorf("decoding response: %w", err)
	}

	if apiResp.Status != "success" {
		return geo.Coordinate{}, fmt.Errorf("%w: %s", geolocate.ErrNotResolved, apiResp.Message)
	}

	name := apiResp.City
	if name == "" {
		name = geo.SentinelCurrentLocation
	}

	return geo.Coordinate{Lat: apiResp.Lat, Lon: apiResp.Lon, Name: name}, nil
}

type locateResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
