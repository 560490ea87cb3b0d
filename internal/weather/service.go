package weather

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cleansky/cleansky/internal/cache"
	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/locale"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// FetchSnapshot fetches and normalizes the forecast for a coordinate.
	// Condition strings and weekday names follow lang.
	FetchSnapshot(ctx context.Context, loc geo.Coordinate, lang locale.Language) (*Snapshot, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Cache holds fetched snapshots keyed by coordinate and language. If
	// nil, a cache with a 10-minute TTL and the default entry bound is
	// created.
	Cache *cache.TTLCache[*Snapshot]

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 30 minutes).
	StaleIfErrorTTL time.Duration
}

// Service provides normalized weather snapshots with a read-through TTL
// cache. Because condition strings are localized at fetch time, the cache
// key carries the language alongside the coordinate.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cache           *cache.TTLCache[*Snapshot]
	staleIfErrorTTL time.Duration
	group           singleflight.Group
}

// NewService creates a new weather service.
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

// GetSnapshot returns the weather snapshot for a coordinate and language,
// fetching from the provider at most once per cache TTL per key.
func (s *Service) GetSnapshot(ctx context.Context, loc geo.Coordinate, lang locale.Language) (*Snapshot, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	key := loc.CacheKey() + "," + string(lang)

	if snapshot, ok := s.cache.Get(key); ok {
		return snapshot, nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		if snapshot, ok := s.cache.Get(key); ok {
			return snapshot, nil
		}
		return s.fetch(ctx, loc, lang, key)
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

func (s *Service) fetch(ctx context.Context, loc geo.Coordinate, lang locale.Language, key string) (*Snapshot, error) {
	s.logger.Debug().
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Str("lang", string(lang)).
		Str("provider", s.provider.Name()).
		Msg("fetching weather snapshot")

	snapshot, err := s.provider.FetchSnapshot(ctx, loc, lang)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", loc.Lat).
			Float64("lon", loc.Lon).
			Msg("failed to fetch weather snapshot")

		if stale, ok := s.cache.GetStale(key, s.staleIfErrorTTL); ok {
			s.logger.Warn().
				Time("fetched_at", stale.FetchedAt).
				Msg("serving stale weather data due to provider error")
			return stale, nil
		}

		return nil, ErrProviderUnavailable
	}

	s.cache.Put(key, snapshot)

	s.logger.Info().
		Int("temperature_c", snapshot.TemperatureC).
		Str("condition", snapshot.Condition).
		Msg("weather snapshot refreshed")

	return snapshot, nil
}
