package generativeAI

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// SuggestionService produces raw suggestion text from trip briefs and nearby
// queries. One model call per invocation; the caller owns parsing and repair.
type SuggestionService struct {
	ai          *AIClient
	temperature float32
	logger      *slog.Logger
}

func NewSuggestionService(ai *AIClient, temperature float32, logger *slog.Logger) *SuggestionService {
	return &SuggestionService{
		ai:          ai,
		temperature: temperature,
		logger:      logger,
	}
}

// Suggest asks the model for POI suggestions and a story itinerary for the
// given brief. Returns the model's raw text untouched.
func (s *SuggestionService) Suggest(ctx context.Context, brief types.TripBrief) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "Suggest")
	defer span.End()
	span.SetAttributes(
		attribute.Int("trip.waypoints", len(brief.Waypoints)),
		attribute.Int("trip.serendipity_level", brief.SerendipityLevel),
	)

	prompt := GetTripSuggestionPrompt(brief)
	text, err := s.ai.GenerateResponse(ctx, prompt, s.generationConfig())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "suggestion call failed")
		return "", &types.SuggestionError{Err: err}
	}
	return text, nil
}

// NearbySuggestions asks the model for real places near a location.
func (s *SuggestionService) NearbySuggestions(ctx context.Context, location string, origin types.Coordinate, language string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NearbySuggestions")
	defer span.End()
	span.SetAttributes(attribute.String("nearby.location", location))

	prompt := GetNearbyPlacesPrompt(location, origin, language)
	text, err := s.ai.GenerateResponse(ctx, prompt, s.generationConfig())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "nearby suggestion call failed")
		return "", &types.SuggestionError{Err: err}
	}
	return text, nil
}

func (s *SuggestionService) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.temperature),
	}
}
