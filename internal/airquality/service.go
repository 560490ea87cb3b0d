package airquality

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cleansky/cleansky/internal/cache"
	"github.com/cleansky/cleansky/internal/geo"
)

// Provider defines the interface for air quality data providers.
type Provider interface {
	// FetchSnapshot fetches and normalizes the snapshot for a coordinate.
	FetchSnapshot(ctx context.Context, loc geo.Coordinate) (*Snapshot, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the air quality service.
type ServiceConfig struct {
	// Provider is the air quality data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Cache holds fetched snapshots keyed by coordinate. If nil, a cache
	// with a 10-minute TTL and the default entry bound is created.
	Cache *cache.TTLCache[*Snapshot]

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 30 minutes).
	StaleIfErrorTTL time.Duration
}

// Service provides normalized air quality snapshots with a read-through,
// coordinate-keyed TTL cache. Concurrent requests for the same coordinate
// are coalesced into a single upstream call.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cache           *cache.TTLCache[*Snapshot]
	staleIfErrorTTL time.Duration
	group           singleflight.Group
}

// NewService creates a new air quality service.
func NewService(cfg ServiceConfig) *Service {
	c := cfg.Cache
	if c == nil {
		c = cache.New[*Snapshot](10*time.Minute, 0)
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 30 * time.Minute
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cache:           c,
		staleIfErrorTTL: staleIfErrorTTL,
	}
}

// GetSnapshot returns the air quality snapshot for a coordinate, fetching
// from the provider at most once per cache TTL per coordinate key.
func (s *Service) GetSnapshot(ctx context.Context, loc geo.Coordinate) (*Snapshot, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	key := loc.CacheKey()

	if snapshot, ok := s.cache.Get(key); ok {
		return snapshot, nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Another caller may have refreshed while we waited on the flight.
		if snapshot, ok := s.cache.Get(key); ok {
			return snapshot, nil
		}
		return s.fetch(ctx, loc, key)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// InvalidateCache clears all cached snapshots.
func (s *Service) InvalidateCache() {
	s.cache.Purge()
}

// fetch fetches from the provider and updates the cache. A failed fetch
// leaves the cache unmodified; stale data within the error window is served
// instead of the failure when available.
func (s *Service) fetch(ctx context.Context, loc geo.Coordinate, key string) (*Snapshot, error) {
	s.logger.Debug().
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Str("provider", s.provider.Name()).
		Msg("fetching air quality snapshot")

	snapshot, err := s.provider.FetchSnapshot(ctx, loc)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", loc.Lat).
			Float64("lon", loc.Lon).
			Msg("failed to fetch air quality snapshot")

		if stale, ok := s.cache.GetStale(key, s.staleIfErrorTTL); ok {
			s.logger.Warn().
				Time("fetched_at", stale.FetchedAt).
				Msg("serving stale air quality data due to provider error")
			return stale, nil
		}

		return nil, ErrProviderUnavailable
	}

	s.cache.Put(key, snapshot)

	s.logger.Info().
		Int("aqi", snapshot.AQI).
		Str("level", string(snapshot.Level)).
		Str("location", snapshot.LocationLabel).
		Msg("air quality snapshot refreshed")

	return snapshot, nil
}
