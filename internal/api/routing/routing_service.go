package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// Ensure implementation satisfies the interface
var _ Client = (*MapboxClient)(nil)

// Client computes a driving path through an ordered coordinate list. A nil
// geometry with a nil error means no route exists; callers degrade gracefully
// instead of failing the request.
type Client interface {
	Route(ctx context.Context, points []types.Coordinate) (*geojson.Geometry, error)
}

// MapboxClient implements Client against the Mapbox directions API.
type MapboxClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewMapboxClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *MapboxClient {
	return &MapboxClient{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

type directionsResponse struct {
	Routes []struct {
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// Route requests driving directions through points in order and returns the
// route geometry as GeoJSON.
func (m *MapboxClient) Route(ctx context.Context, points []types.Coordinate) (*geojson.Geometry, error) {
	ctx, span := otel.Tracer("Routing").Start(ctx, "Route")
	defer span.End()
	span.SetAttributes(attribute.Int("routing.points", len(points)))

	if len(points) < 2 {
		return nil, nil
	}

	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%f,%f", p.Lng(), p.Lat())
	}

	params := url.Values{}
	params.Set("access_token", m.token)
	params.Set("geometries", "geojson")
	params.Set("overview", "full")

	reqURL := fmt.Sprintf("%s/%s?%s", m.baseURL, strings.Join(coords, ";"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "directions request failed")
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions API returned status %s", resp.Status)
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 || decoded.Routes[0].Geometry == nil {
		m.logger.WarnContext(ctx, "No route found", slog.Int("points", len(points)))
		return nil, nil
	}
	return decoded.Routes[0].Geometry, nil
}
