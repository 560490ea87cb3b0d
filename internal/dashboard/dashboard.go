// Package dashboard assembles the full air quality dashboard: parallel
// air quality and weather fetches, derived notifications, and an optional
// late-arriving AI summary.
package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/insight"
	"github.com/cleansky/cleansky/internal/locale"
	"github.com/cleansky/cleansky/internal/notification"
	"github.com/cleansky/cleansky/internal/weather"
)

// Dashboard is one complete load for a location.
type Dashboard struct {
	AirQuality    *airquality.Snapshot
	Weather       *weather.Snapshot
	Notifications []notification.Notification
	LoadedAt      time.Time
}

// ServiceConfig holds configuration for the dashboard service.
type ServiceConfig struct {
	// AirQuality provides air quality snapshots.
	AirQuality *airquality.Service

	// Weather provides weather snapshots.
	Weather *weather.Service

	// Insight generates the AI summary. Optional; when nil, summaries
	// degrade to localized placeholders.
	Insight *insight.Service

	// Logger for service operations.
	Logger zerolog.Logger

	// SummaryTimeout bounds the background summary generation
	// (default: 30 seconds).
	SummaryTimeout time.Duration
}

// Service orchestrates dashboard loads.
type Service struct {
	airQuality     *airquality.Service
	weather        *weather.Service
	insight        *insight.Service
	logger         zerolog.Logger
	summaryTimeout time.Duration
}

// NewService creates a new dashboard service.
func NewService(cfg ServiceConfig) *Service {
	summaryTimeout := cfg.SummaryTimeout
	if summaryTimeout == 0 {
		summaryTimeout = 30 * time.Second
	}

	// An unset insight service behaves like one without a provider:
	// placeholder summaries, no network calls.
	if cfg.Insight == nil {
		cfg.Insight = insight.NewService(insight.ServiceConfig{Logger: cfg.Logger})
	}

	return &Service{
		airQuality:     cfg.AirQuality,
		weather:        cfg.Weather,
		insight:        cfg.Insight,
		logger:         cfg.Logger,
		summaryTimeout: summaryTimeout,
	}
}

// Load fetches air quality and weather in parallel and derives the
// notification list. Either fetch failing fails the whole load; there is
// no partial dashboard.
//
// The returned channel delivers the AI health summary when it is ready and
// is then closed. It is buffered, so an abandoned load does not leak the
// generating goroutine; callers that do not care simply drop the channel.
func (s *Service) Load(ctx context.Context, loc geo.Coordinate, lang locale.Language) (*Dashboard, <-chan string, error) {
	var (
		aq *airquality.Snapshot
		w  *weather.Snapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		aq, err = s.airQuality.GetSnapshot(gctx, loc)
		return err
	})
	g.Go(func() error {
		var err error
		w, err = s.weather.GetSnapshot(gctx, loc, lang)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	dash := &Dashboard{
		AirQuality:    aq,
		Weather:       w,
		Notifications: notification.Derive(aq, w, lang, time.Now()),
		LoadedAt:      time.Now(),
	}

	return dash, s.startSummary(aq, w, lang), nil
}

// Summary generates the AI health summary synchronously. Backs callers
// that ask for the summary on its own rather than as part of a load.
func (s *Service) Summary(ctx context.Context, loc geo.Coordinate, lang locale.Language) (string, error) {
	dash, _, err := s.Load(ctx, loc, lang)
	if err != nil {
		return "", err
	}
	return s.insight.AnalyzeAirQuality(ctx, dash.AirQuality, dash.Weather, lang), nil
}

// startSummary kicks off summary generation in the background. The load's
// request context is deliberately not used: the summary outlives the
// request that triggered it, like a fire-and-forget refresh.
func (s *Service) startSummary(aq *airquality.Snapshot, w *weather.Snapshot, lang locale.Language) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)

		ctx, cancel := context.WithTimeout(context.Background(), s.summaryTimeout)
		defer cancel()

		out <- s.insight.AnalyzeAirQuality(ctx, aq, w, lang)
	}()

	return out
}
