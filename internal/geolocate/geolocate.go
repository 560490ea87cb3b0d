// Package geolocate resolves a caller's approximate coordinate from their
// IP address, falling back to a default location when resolution fails.
package geolocate

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/geo"
)

// ErrNotResolved is returned by providers when no location can be
// determined for the address.
var ErrNotResolved = errors.New("location not resolved")

// Provider defines the interface for IP geolocation providers.
type Provider interface {
	// Locate resolves an IP address to a coordinate.
	Locate(ctx context.Context, ip string) (geo.Coordinate, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the geolocation service.
type ServiceConfig struct {
	// Provider is the IP geolocation provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Timeout bounds a single resolution attempt (default: 10 seconds).
	Timeout time.Duration

	// Fallback is the coordinate used when resolution fails
	// (default: geo.DefaultLocation).
	Fallback geo.Coordinate
}

// Service resolves caller locations. Resolution never fails from the
// caller's point of view: timeouts, provider errors, and unresolvable
// addresses all degrade to the fallback coordinate.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	timeout  time.Duration
	fallback geo.Coordinate
}

// NewService creates a new geolocation service.
func NewService(cfg ServiceConfig) *Service {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	fallback := cfg.Fallback
	if fallback == (geo.Coordinate{}) {
		fallback = geo.DefaultLocation
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		timeout:  timeout,
		fallback: fallback,
	}
}

// Locate resolves ip to a coordinate. The second return value reports
// whether the coordinate came from the provider rather than the fallback.
func (s *Service) Locate(ctx context.Context, ip string) (geo.Coordinate, bool) {
	if s.provider == nil || ip == "" {
		return s.fallback, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	loc, err := s.provider.Locate(ctx, ip)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("ip", ip).
			Str("provider", s.provider.Name()).
			Str("fallback", s.fallback.Name).
			Msg("geolocation failed, using fallback location")
		return s.fallback, false
	}

	if err := loc.Validate(); err != nil {
		s.logger.Warn().Err(err).
			Str("ip", ip).
			Msg("geolocation returned invalid coordinate, using fallback")
		return s.fallback, false
	}

	s.logger.Debug().
		Str("ip", ip).
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Str("name", loc.Name).
		Msg("resolved caller location")

	return loc, true
}
