package nearby

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jacksu4/Vibe-Travel/internal/api/geocode"
	"github.com/jacksu4/Vibe-Travel/internal/api/trip"
	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// SuggestionClient produces raw model text naming real places near a location.
type SuggestionClient interface {
	NearbySuggestions(ctx context.Context, location string, origin types.Coordinate, language string) (string, error)
}

// Service finds verified places around a location.
type Service interface {
	FindNearby(ctx context.Context, req types.NearbyRequest) (*types.NearbyResponse, error)
}

// ServiceImpl asks the suggestion model for place names and verifies each one
// against the geocoder. Places the geocoder cannot confirm fall back to a
// synthetic position near the origin instead of disappearing from the map.
type ServiceImpl struct {
	logger      *slog.Logger
	geo         geocode.Resolver
	suggestions SuggestionClient
	radiusKm    float64
}

func NewServiceImpl(geo geocode.Resolver, suggestions SuggestionClient, radiusKm float64, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		geo:         geo,
		suggestions: suggestions,
		radiusKm:    radiusKm,
	}
}

func (s *ServiceImpl) FindNearby(ctx context.Context, req types.NearbyRequest) (*types.NearbyResponse, error) {
	ctx, span := otel.Tracer("NearbyService").Start(ctx, "FindNearby")
	defer span.End()
	span.SetAttributes(attribute.String("nearby.location", req.Location))

	if req.Location == "" || req.Coordinates == nil {
		return nil, fmt.Errorf("%w: location and coordinates are required", types.ErrInvalidInput)
	}
	origin := *req.Coordinates

	raw, err := s.suggestions.NearbySuggestions(ctx, req.Location, origin, req.Language)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "nearby suggestion call failed")
		return nil, err
	}

	places, err := parseNearbyPlaces(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "nearby payload malformed")
		return nil, err
	}

	located := make([]types.SuggestedPlace, len(places))
	for i, place := range places {
		located[i] = s.locate(ctx, place, origin, i, len(places))
	}

	kept := make([]types.SuggestedPlace, 0, len(located))
	for _, place := range located {
		if place.Coordinates == nil {
			continue
		}
		distance := origin.DistanceKm(*place.Coordinates)
		if distance > s.radiusKm {
			s.logger.DebugContext(ctx, "Dropping place outside radius",
				slog.String("place", place.Name), slog.Float64("distance_km", distance))
			continue
		}
		place.DistanceKm = math.Round(distance*10) / 10
		kept = append(kept, place)
	}

	s.logger.InfoContext(ctx, "Nearby places resolved",
		slog.String("location", req.Location),
		slog.Int("suggested", len(places)),
		slog.Int("kept", len(kept)))
	return &types.NearbyResponse{NearbyPlaces: kept}, nil
}

// locate verifies one suggested place against the geocoder. When the search
// finds nothing inside the radius, the place is pinned on an offset ring
// around the origin so the map still shows it: each fallback gets its own
// angle and a distance of 0.5km plus 0.3km per index.
func (s *ServiceImpl) locate(ctx context.Context, place types.SuggestedPlace, origin types.Coordinate, index, total int) types.SuggestedPlace {
	found, err := s.geo.SearchNearby(ctx, place.Name, origin, s.radiusKm)
	if err != nil {
		s.logger.WarnContext(ctx, "Nearby search error",
			slog.String("place", place.Name), slog.Any("error", err))
		found = nil
	}

	if found != nil {
		place.Coordinates = &found.Coordinates
		place.ResolvedName = found.FullName
		place.DistanceKm = math.Round(found.DistanceKm*10) / 10
		return place
	}

	angle := float64(index) * 2 * math.Pi / float64(total)
	offsetDist := 0.5 + float64(index)*0.3
	offsetLng := (offsetDist / 111) * math.Cos(angle) / math.Cos(origin.Lat()*math.Pi/180)
	offsetLat := (offsetDist / 111) * math.Sin(angle)

	coords := types.Coordinate{origin.Lng() + offsetLng, origin.Lat() + offsetLat}
	place.Coordinates = &coords
	place.DistanceKm = offsetDist
	return place
}

// parseNearbyPlaces repairs and decodes the model's nearby answer. The
// nearby_places array is required.
func parseNearbyPlaces(raw string) ([]types.SuggestedPlace, error) {
	cleaned, err := trip.SanitizeModelJSON(raw)
	if err != nil {
		return nil, &types.MalformedSuggestionError{Raw: raw, Err: err}
	}

	var payload struct {
		NearbyPlaces []json.RawMessage `json:"nearby_places"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &types.MalformedSuggestionError{Raw: raw, Cleaned: cleaned, Err: err}
	}
	if payload.NearbyPlaces == nil {
		return nil, &types.MalformedSuggestionError{
			Raw:     raw,
			Cleaned: cleaned,
			Err:     fmt.Errorf("missing required nearby_places array"),
		}
	}
	return trip.DecodeSuggestedPlaces(payload.NearbyPlaces), nil
}
