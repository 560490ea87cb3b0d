// Package insight generates natural-language air quality guidance through
// a generative AI provider. Every entry point degrades to a localized
// placeholder string; AI trouble is never surfaced as an error.
package insight

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/cache"
	"github.com/cleansky/cleansky/internal/locale"
	"github.com/cleansky/cleansky/internal/weather"
)

// Provider defines the interface for generative AI providers.
type Provider interface {
	// GenerateContent produces a completion for prompt. systemInstruction
	// may be empty.
	GenerateContent(ctx context.Context, prompt, systemInstruction string) (string, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the insight service.
type ServiceConfig struct {
	// Provider is the generative AI provider. A nil provider disables AI
	// features; all calls return the unavailable placeholder.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Cache holds analysis responses keyed by their input data points. If
	// nil, a cache with the default TTL and entry bound is created.
	Cache *cache.TTLCache[string]
}

// Service wraps the AI provider with response caching and placeholder
// fallbacks.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cache    *cache.TTLCache[string]
}

// NewService creates a new insight service.
func NewService(cfg ServiceConfig) *Service {
	c := cfg.Cache
	if c == nil {
		c = cache.New[string](cache.DefaultTTL, 0)
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cache:    c,
	}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// AnalyzeAirQuality produces a short health recommendation for the given
// snapshots. Responses are cached on the data points that shape the prompt,
// so repeated loads of an unchanged dashboard skip the provider.
func (s *Service) AnalyzeAirQuality(ctx context.Context, aq *airquality.Snapshot, w *weather.Snapshot, lang locale.Language) string {
	cacheKey := fmt.Sprintf("%s-%d-%s-%s", aq.LocationLabel, aq.AQI, w.Condition, lang)
	if text, ok := s.cache.Get(cacheKey); ok {
		return text
	}

	if s.provider == nil {
		return lang.Pick("AI services are currently unavailable (Missing API Key).", "AI недоступен (нет API ключа).")
	}

	prompt := fmt.Sprintf(`Analyze the following air quality and weather data for %s.
Current AQI: %d (%s).
Pollutants: PM2.5: %.1f, PM10: %.1f, NO2: %.1f.
Weather: %d°C, %s, Humidity: %d%%.

Provide a concise, 3-sentence health recommendation for the general public.
Focus on whether it is safe to exercise outdoors and if masks are needed.

IMPORTANT: The response MUST be in %s language.`,
		aq.LocationLabel, aq.AQI, aq.Level.Localized(lang),
		aq.Pollutants[airquality.KeyPM25].Value,
		aq.Pollutants[airquality.KeyPM10].Value,
		aq.Pollutants[airquality.KeyNO2].Value,
		w.TemperatureC, w.Condition, w.HumidityPct,
		responseLanguage(lang))

	text, err := s.provider.GenerateContent(ctx, prompt, "")
	if err != nil {
		s.logger.Error().Err(err).Str("provider", s.provider.Name()).Msg("air quality analysis failed")
		return lang.Pick("Error connecting to AI analysis service.", "Ошибка соединения с AI.")
	}
	if text == "" {
		return lang.Pick("Unable to generate analysis.", "Не удалось сгенерировать анализ.")
	}

	s.cache.Put(cacheKey, text)
	return text
}

// Chat answers a free-form user message. context carries the current
// dashboard state so the assistant can ground its answer.
func (s *Service) Chat(ctx context.Context, message, contextInfo string, lang locale.Language) string {
	if s.provider == nil {
		return lang.Pick("I'm offline right now.", "Я сейчас офлайн.")
	}

	systemInstruction := fmt.Sprintf(`You are CleanSky Bot, a helpful air quality assistant.
Use the following context to answer the user's question if relevant: %s.
Keep answers short, friendly, and helpful for mobile users.
ALWAYS answer in %s language.`, contextInfo, responseLanguage(lang))

	text, err := s.provider.GenerateContent(ctx, message, systemInstruction)
	if err != nil {
		s.logger.Error().Err(err).Str("provider", s.provider.Name()).Msg("assistant chat failed")
		return lang.Pick("Sorry, I'm having trouble connecting to the server.", "Проблемы с соединением.")
	}
	if text == "" {
		return lang.Pick("I didn't quite catch that.", "Я не расслышал, повторите?")
	}
	return text
}

// ProcessReport asks the provider to classify the likely pollution source
// behind a crowdsourced observation.
func (s *Service) ProcessReport(ctx context.Context, report, location string, lang locale.Language) string {
	if s.provider == nil {
		return lang.Pick("AI unavailable.", "AI недоступен.")
	}

	prompt := fmt.Sprintf(`A user in %s reported: "%s".
Based on this qualitative report, what is the likely source of pollution?
(e.g., traffic, industrial, wildfire, dust storm).
Keep the answer very short (under 20 words).
Response language: %s.`, location, report, responseLanguage(lang))

	text, err := s.provider.GenerateContent(ctx, prompt, "")
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", s.provider.Name()).Msg("report classification failed")
		return lang.Pick("Report logged locally.", "Отчет сохранен локально.")
	}
	if text == "" {
		return lang.Pick("Report logged.", "Отчет принят.")
	}
	return text
}

func responseLanguage(lang locale.Language) string {
	return lang.Pick("English", "Russian")
}
