package trip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/jacksu4/Vibe-Travel/internal/api/geocode"
	"github.com/jacksu4/Vibe-Travel/internal/api/routing"
	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// geocodeConcurrency caps parallel lookups per batch so a large suggestion
// payload cannot flood the geocoding API.
const geocodeConcurrency = 8

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// SuggestionClient produces raw model text for a trip brief.
type SuggestionClient interface {
	Suggest(ctx context.Context, brief types.TripBrief) (string, error)
}

// Service plans multi-waypoint trips.
type Service interface {
	PlanTrip(ctx context.Context, req types.TripPlanRequest) (*types.TripPlan, error)
}

// ServiceImpl orchestrates the planning pipeline: geocode the user's stops,
// ask the suggestion model for POIs, geocode those, merge them into the route
// order, fetch driving directions and cache the assembled plan.
type ServiceImpl struct {
	logger      *slog.Logger
	geo         geocode.Resolver
	suggestions SuggestionClient
	routing     routing.Client
	cache       *PlanCache
}

func NewServiceImpl(geo geocode.Resolver, suggestions SuggestionClient, routingClient routing.Client, planCache *PlanCache, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		geo:         geo,
		suggestions: suggestions,
		routing:     routingClient,
		cache:       planCache,
	}
}

func (s *ServiceImpl) PlanTrip(ctx context.Context, req types.TripPlanRequest) (*types.TripPlan, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "PlanTrip")
	defer span.End()
	span.SetAttributes(
		attribute.Int("trip.waypoints", len(req.Waypoints)),
		attribute.Float64("trip.vibe", req.Vibe),
	)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cacheKey := s.cache.Key(req)
	if plan, found := s.cache.Get(cacheKey); found {
		s.logger.InfoContext(ctx, "Trip plan cache hit",
			slog.String("waypoints", strings.Join(req.Waypoints, " -> ")))
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return plan, nil
	}

	userWaypoints, err := s.resolveUserWaypoints(ctx, req.Waypoints, req.Language)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding failed")
		return nil, err
	}

	start := userWaypoints[0]
	end := userWaypoints[len(userWaypoints)-1]

	brief := types.TripBrief{
		Waypoints:         userWaypoints,
		Days:              req.Days,
		SerendipityLevel:  req.SerendipityLevel(),
		CustomPreferences: req.CustomPreferences,
		Language:          req.Language,
	}

	raw, err := s.suggestions.Suggest(ctx, brief)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "suggestion call failed")
		return nil, err
	}

	payload, err := ParseSuggestionPayload(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "suggestion payload malformed")
		return nil, err
	}

	// POI stops geocode by their location field without a bias point. The
	// start/end city lists geocode by name, biased toward their city, so
	// "Old Town Hall" resolves to the right one.
	poiStops := s.resolvePlaces(ctx, payload.Waypoints, byLocation, nil, req.Language)
	extras := s.resolvePlaces(ctx, payload.ExtraSuggestions, byLocation, nil, req.Language)
	startCity := s.resolvePlaces(ctx, payload.StartLocationSuggestions, byName, start.Coordinates, req.Language)
	endCity := s.resolvePlaces(ctx, payload.EndLocationSuggestions, byName, end.Coordinates, req.Language)
	routeStops := s.resolvePlaces(ctx, payload.RouteWaypoints, byLocation, nil, req.Language)

	allExtras := make([]types.SuggestedPlace, 0, len(extras)+len(startCity)+len(endCity)+len(routeStops))
	allExtras = append(allExtras, extras...)
	allExtras = append(allExtras, startCity...)
	allExtras = append(allExtras, endCity...)
	allExtras = append(allExtras, routeStops...)

	fixed := make([]types.Coordinate, len(userWaypoints))
	for i, wp := range userWaypoints {
		fixed[i] = *wp.Coordinates
	}
	candidates := make([]types.Coordinate, len(poiStops))
	for i, p := range poiStops {
		candidates[i] = *p.Coordinates
	}
	routePoints := Insert(fixed, candidates)

	route, err := s.routing.Route(ctx, routePoints)
	if err != nil {
		// A missing route degrades the plan, it does not fail it.
		s.logger.WarnContext(ctx, "Routing failed, returning plan without route", slog.Any("error", err))
		route = nil
	}

	plan := &types.TripPlan{
		Start:            start,
		End:              end,
		UserWaypoints:    userWaypoints[1 : len(userWaypoints)-1],
		Waypoints:        poiStops,
		ExtraSuggestions: allExtras,
		Route:            route,
		Itinerary:        payload.StoryItinerary,
	}

	s.cache.Set(cacheKey, plan)
	s.logger.InfoContext(ctx, "Trip plan assembled",
		slog.Int("poi_stops", len(poiStops)),
		slog.Int("extra_suggestions", len(allExtras)),
		slog.Bool("has_route", route != nil))
	return plan, nil
}

func validateRequest(req types.TripPlanRequest) error {
	if len(req.Waypoints) < 2 {
		return fmt.Errorf("%w: at least 2 waypoints required", types.ErrInvalidInput)
	}
	for _, wp := range req.Waypoints {
		if strings.TrimSpace(wp) == "" {
			return fmt.Errorf("%w: waypoint names must not be empty", types.ErrInvalidInput)
		}
	}
	return nil
}

// resolveUserWaypoints geocodes the user's stops in parallel. Any stop the
// geocoder cannot place fails the whole request with the offending names.
func (s *ServiceImpl) resolveUserWaypoints(ctx context.Context, names []string, language string) ([]types.Waypoint, error) {
	resolved := make([]types.Waypoint, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(geocodeConcurrency)
	for i, name := range names {
		g.Go(func() error {
			coord, err := s.geo.Resolve(gctx, name, geocode.ResolveOptions{Language: language})
			if err != nil {
				s.logger.WarnContext(gctx, "Waypoint geocoding error",
					slog.String("waypoint", name), slog.Any("error", err))
				coord = nil
			}
			resolved[i] = types.Waypoint{Name: name, Coordinates: coord}
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	for _, wp := range resolved {
		if wp.Coordinates == nil {
			failed = append(failed, wp.Name)
		}
	}
	if len(failed) > 0 {
		return nil, &types.GeocodeFailedError{Names: failed}
	}
	return resolved, nil
}

type resolveField int

const (
	byLocation resolveField = iota
	byName
)

// resolvePlaces geocodes a suggestion list in parallel and drops entries the
// geocoder cannot place. Lookup errors count as not found.
func (s *ServiceImpl) resolvePlaces(ctx context.Context, places []types.SuggestedPlace, field resolveField, proximity *types.Coordinate, language string) []types.SuggestedPlace {
	resolved := make([]types.SuggestedPlace, len(places))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(geocodeConcurrency)
	for i, place := range places {
		g.Go(func() error {
			query := place.Location
			if field == byName || query == "" {
				query = place.Name
			}
			coord, err := s.geo.Resolve(gctx, query, geocode.ResolveOptions{
				Proximity: proximity,
				Language:  language,
			})
			if err != nil {
				s.logger.DebugContext(gctx, "Suggested place geocoding error",
					slog.String("place", place.Name), slog.Any("error", err))
				coord = nil
			}
			place.Coordinates = coord
			resolved[i] = place
			return nil
		})
	}
	_ = g.Wait()

	kept := resolved[:0]
	for _, place := range resolved {
		if place.Coordinates != nil {
			kept = append(kept, place)
		}
	}
	return kept
}
