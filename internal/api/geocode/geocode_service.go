package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// ResolveOptions tune a single geocoding lookup. Proximity biases the search
// toward a known point; Language selects localized place names.
type ResolveOptions struct {
	Proximity *types.Coordinate
	Language  string
}

// NearbyPlace is a proximity-search hit within the requested radius.
type NearbyPlace struct {
	Coordinates types.Coordinate
	FullName    string
	DistanceKm  float64
}

// Ensure implementation satisfies the interface
var _ Resolver = (*MapboxResolver)(nil)

// Resolver converts place names into coordinates. A nil coordinate with a nil
// error is the definitive "not found" result; callers decide whether that is
// fatal or merely exclusionary.
type Resolver interface {
	Resolve(ctx context.Context, place string, opts ResolveOptions) (*types.Coordinate, error)
	SearchNearby(ctx context.Context, name string, origin types.Coordinate, radiusKm float64) (*NearbyPlace, error)
}

// MapboxResolver implements Resolver against the Mapbox geocoding API, with a
// process-wide lookup cache to avoid repeated calls for the same place.
type MapboxResolver struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	token      string
	cache      *cache.Cache
}

// NewMapboxResolver creates a resolver. The cache is injected so tests can
// isolate instances; pass a fresh cache.New per test.
func NewMapboxResolver(baseURL, token string, timeout time.Duration, lookupCache *cache.Cache, logger *slog.Logger) *MapboxResolver {
	return &MapboxResolver{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		cache:      lookupCache,
	}
}

type geocodeResponse struct {
	Features []struct {
		Center    types.Coordinate `json:"center"`
		PlaceName string           `json:"place_name"`
		PlaceType []string         `json:"place_type"`
		Text      string           `json:"text"`
	} `json:"features"`
}

// Resolve returns the best-match coordinate for a place name, or (nil, nil)
// when the geocoder knows nothing about it.
func (m *MapboxResolver) Resolve(ctx context.Context, place string, opts ResolveOptions) (*types.Coordinate, error) {
	ctx, span := otel.Tracer("Geocode").Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("geocode.place", place))

	cacheKey := resolveCacheKey(place, opts)
	if cached, found := m.cache.Get(cacheKey); found {
		coord, _ := cached.(*types.Coordinate)
		return coord, nil
	}

	params := url.Values{}
	params.Set("access_token", m.token)
	params.Set("limit", "1")
	if opts.Proximity != nil {
		params.Set("proximity", fmt.Sprintf("%f,%f", opts.Proximity.Lng(), opts.Proximity.Lat()))
	}
	if opts.Language != "" {
		params.Set("language", opts.Language)
	}

	resp, err := m.forwardGeocode(ctx, place, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding request failed")
		return nil, err
	}

	var coord *types.Coordinate
	if len(resp.Features) > 0 {
		c := resp.Features[0].Center
		coord = &c
	} else {
		m.logger.DebugContext(ctx, "No geocoding match", slog.String("place", place))
	}

	m.cache.SetDefault(cacheKey, coord)
	return coord, nil
}

// SearchNearby looks a named place up near origin and returns the first match
// inside radiusKm, or (nil, nil) when every candidate is too far away. The
// query is enriched with the city/region around origin so ambiguous names
// resolve to the local instance.
func (m *MapboxResolver) SearchNearby(ctx context.Context, name string, origin types.Coordinate, radiusKm float64) (*NearbyPlace, error) {
	ctx, span := otel.Tracer("Geocode").Start(ctx, "SearchNearby")
	defer span.End()
	span.SetAttributes(
		attribute.String("geocode.place", name),
		attribute.Float64("geocode.radius_km", radiusKm),
	)

	query := name
	if area, err := m.locationContext(ctx, origin); err == nil && area != "" {
		query = name + ", " + area
	}

	params := url.Values{}
	params.Set("access_token", m.token)
	params.Set("proximity", fmt.Sprintf("%f,%f", origin.Lng(), origin.Lat()))
	params.Set("limit", "10")
	params.Set("types", "poi,address")

	resp, err := m.forwardGeocode(ctx, query, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "nearby search failed")
		return nil, err
	}

	for _, feature := range resp.Features {
		distance := origin.DistanceKm(feature.Center)
		if distance <= radiusKm {
			return &NearbyPlace{
				Coordinates: feature.Center,
				FullName:    feature.PlaceName,
				DistanceKm:  distance,
			}, nil
		}
	}

	// Far-away matches are worse than none.
	m.logger.DebugContext(ctx, "No nearby match within radius",
		slog.String("place", name), slog.Float64("radius_km", radiusKm))
	return nil, nil
}

// locationContext reverse-geocodes origin into "city, region, country" text.
func (m *MapboxResolver) locationContext(ctx context.Context, origin types.Coordinate) (string, error) {
	params := url.Values{}
	params.Set("access_token", m.token)
	params.Set("types", "place,region,country")

	query := fmt.Sprintf("%f,%f", origin.Lng(), origin.Lat())
	resp, err := m.forwardGeocode(ctx, query, params)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, feature := range resp.Features {
		if feature.Text != "" {
			parts = append(parts, feature.Text)
		}
	}
	return strings.Join(parts, ", "), nil
}

func (m *MapboxResolver) forwardGeocode(ctx context.Context, query string, params url.Values) (*geocodeResponse, error) {
	reqURL := fmt.Sprintf("%s/%s.json?%s", m.baseURL, url.PathEscape(query), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %s", resp.Status)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return &decoded, nil
}

func resolveCacheKey(place string, opts ResolveOptions) string {
	key := place + "|" + opts.Language
	if opts.Proximity != nil {
		key += fmt.Sprintf("|%f,%f", opts.Proximity.Lng(), opts.Proximity.Lat())
	}
	return key
}
