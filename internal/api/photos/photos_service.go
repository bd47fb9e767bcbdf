package photos

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"googlemaps.github.io/maps"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

const (
	searchRadiusMeters = 5000
	maxPhotos          = 5
	photoBaseURL       = "https://maps.googleapis.com/maps/api/place/photo"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service looks up photos for a named place.
type Service interface {
	GetPlacePhotos(ctx context.Context, req types.PlacePhotosRequest) (*types.PlacePhotosResponse, error)
}

// ServiceImpl resolves a place via Google Places text search biased to the
// given coordinates and builds photo media URLs from the result. An unknown
// place, a place without photos, or a missing API key is an empty response,
// not an error.
type ServiceImpl struct {
	logger *slog.Logger
	client *maps.Client
	apiKey string
	cache  *cache.Cache
}

// NewServiceImpl creates the photo service. An empty API key leaves the
// client unconfigured; lookups then return empty results instead of failing
// the sibling endpoints. Extra client options are for tests.
func NewServiceImpl(apiKey string, photoCache *cache.Cache, logger *slog.Logger, opts ...maps.ClientOption) (*ServiceImpl, error) {
	s := &ServiceImpl{
		logger: logger,
		apiKey: apiKey,
		cache:  photoCache,
	}
	if apiKey == "" {
		logger.Warn("Google Maps API key not configured, photo lookups will return empty results")
		return s, nil
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	s.client = client
	return s, nil
}

func (s *ServiceImpl) GetPlacePhotos(ctx context.Context, req types.PlacePhotosRequest) (*types.PlacePhotosResponse, error) {
	ctx, span := otel.Tracer("PhotosService").Start(ctx, "GetPlacePhotos")
	defer span.End()
	span.SetAttributes(attribute.String("photos.place", req.Name))

	if req.Name == "" || req.Coordinates == nil {
		return nil, fmt.Errorf("%w: name and coordinates are required", types.ErrInvalidInput)
	}

	cacheKey := fmt.Sprintf("%s|%f,%f", req.Name, req.Coordinates.Lng(), req.Coordinates.Lat())
	if cached, found := s.cache.Get(cacheKey); found {
		if resp, ok := cached.(*types.PlacePhotosResponse); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return resp, nil
		}
	}

	if s.client == nil {
		return &types.PlacePhotosResponse{Photos: []types.PlacePhoto{}}, nil
	}

	search, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query: req.Name,
		Location: &maps.LatLng{
			Lat: req.Coordinates.Lat(),
			Lng: req.Coordinates.Lng(),
		},
		Radius: searchRadiusMeters,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "places search failed")
		return nil, fmt.Errorf("places search failed: %w", err)
	}

	resp := &types.PlacePhotosResponse{Photos: []types.PlacePhoto{}}
	if len(search.Results) > 0 {
		for _, photo := range search.Results[0].Photos {
			if len(resp.Photos) >= maxPhotos {
				break
			}
			resp.Photos = append(resp.Photos, types.PlacePhoto{URL: s.photoURL(photo.PhotoReference)})
		}
	}
	resp.Count = len(resp.Photos)

	if resp.Count == 0 {
		s.logger.DebugContext(ctx, "No photos found", slog.String("place", req.Name))
	}

	s.cache.SetDefault(cacheKey, resp)
	return resp, nil
}

func (s *ServiceImpl) photoURL(reference string) string {
	params := url.Values{}
	params.Set("maxwidth", "600")
	params.Set("photo_reference", reference)
	params.Set("key", s.apiKey)
	return photoBaseURL + "?" + params.Encode()
}
