package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/locale"
)

// Classifier estimates the pollution source behind an observation. It
// returns display text, never an error.
type Classifier interface {
	ProcessReport(ctx context.Context, report, location string, lang locale.Language) string
}

// ServiceConfig holds configuration for the report service.
type ServiceConfig struct {
	// Repository is the report store.
	Repository Repository

	// Classifier annotates reports with a likely pollution source.
	// Optional; when nil, reports are stored unclassified.
	Classifier Classifier

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service handles crowdsourced report submission and retrieval.
type Service struct {
	repo       Repository
	classifier Classifier
	logger     zerolog.Logger
}

// NewService creates a new report service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:       cfg.Repository,
		classifier: cfg.Classifier,
		logger:     cfg.Logger,
	}
}

// CreateInput is the input for creating a report.
type CreateInput struct {
	Text     string
	Location geo.Coordinate
	Language locale.Language
}

// Create validates, classifies, and stores a new observation.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Report, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > MaxTextLength {
		return nil, ErrTextTooLong
	}
	if err := input.Location.Validate(); err != nil {
		return nil, err
	}

	rep := &Report{
		ID:           uuid.NewString(),
		Text:         text,
		Lat:          input.Location.Lat,
		Lon:          input.Location.Lon,
		LocationName: input.Location.DisplayLabel(),
		CreatedAt:    time.Now().UTC(),
	}

	if s.classifier != nil {
		rep.Classification = s.classifier.ProcessReport(ctx, text, rep.LocationName, input.Language)
	}

	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("storing report: %w", err)
	}

	s.logger.Info().
		Str("report_id", rep.ID).
		Str("location", rep.LocationName).
		Msg("crowdsource report stored")

	return rep, nil
}

// Get retrieves a report by ID.
func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves reports, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.repo.List(ctx, opts)
}
