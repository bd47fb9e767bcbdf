package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) *MapboxResolver {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewMapboxResolver(server.URL, "test-token", 5*time.Second, cache.New(time.Minute, time.Minute), slog.Default())
}

func featureJSON(lng, lat float64, placeName string) string {
	return fmt.Sprintf(`{"center": [%f, %f], "place_name": %q, "place_type": ["poi"], "text": %q}`, lng, lat, placeName, placeName)
}

func TestResolve(t *testing.T) {
	var gotQuery url.Values
	var gotPath string
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotPath = r.URL.Path
		fmt.Fprintf(w, `{"features": [%s]}`, featureJSON(2.3522, 48.8566, "Paris, France"))
	})

	proximity := types.Coordinate{2.0, 48.0}
	coord, err := resolver.Resolve(context.Background(), "Paris", ResolveOptions{
		Proximity: &proximity,
		Language:  "en",
	})
	require.NoError(t, err)
	require.NotNil(t, coord)
	assert.Equal(t, types.Coordinate{2.3522, 48.8566}, *coord)

	assert.Equal(t, "/Paris.json", gotPath)
	assert.Equal(t, "test-token", gotQuery.Get("access_token"))
	assert.Equal(t, "1", gotQuery.Get("limit"))
	assert.Equal(t, "en", gotQuery.Get("language"))
	assert.NotEmpty(t, gotQuery.Get("proximity"))
}

func TestResolveNotFound(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features": []}`)
	})

	coord, err := resolver.Resolve(context.Background(), "Atlantis", ResolveOptions{})
	require.NoError(t, err)
	assert.Nil(t, coord)
}

func TestResolveCachesLookups(t *testing.T) {
	var calls atomic.Int32
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, `{"features": [%s]}`, featureJSON(2.3522, 48.8566, "Paris, France"))
	})

	for range 3 {
		coord, err := resolver.Resolve(context.Background(), "Paris", ResolveOptions{Language: "en"})
		require.NoError(t, err)
		require.NotNil(t, coord)
	}
	assert.Equal(t, int32(1), calls.Load())

	// A different language is a different lookup.
	_, err := resolver.Resolve(context.Background(), "Paris", ResolveOptions{Language: "zh"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestResolveCachesNotFound(t *testing.T) {
	var calls atomic.Int32
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"features": []}`)
	})

	for range 2 {
		coord, err := resolver.Resolve(context.Background(), "Atlantis", ResolveOptions{})
		require.NoError(t, err)
		assert.Nil(t, coord)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestResolveUpstreamError(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := resolver.Resolve(context.Background(), "Paris", ResolveOptions{})
	assert.Error(t, err)
}

func TestSearchNearbyWithinRadius(t *testing.T) {
	origin := types.Coordinate{130.4017, 33.5902}
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("types") == "place,region,country" {
			// Reverse geocode for location context.
			fmt.Fprintf(w, `{"features": [%s]}`, featureJSON(130.40, 33.59, "Fukuoka"))
			return
		}
		fmt.Fprintf(w, `{"features": [%s]}`, featureJSON(130.4105, 33.5934, "Kushida Shrine, Hakata"))
	})

	place, err := resolver.SearchNearby(context.Background(), "Kushida Shrine", origin, 5)
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.Equal(t, types.Coordinate{130.4105, 33.5934}, place.Coordinates)
	assert.Equal(t, "Kushida Shrine, Hakata", place.FullName)
	assert.Less(t, place.DistanceKm, 5.0)
}

func TestSearchNearbyRejectsDistantMatches(t *testing.T) {
	origin := types.Coordinate{130.4017, 33.5902}
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("types") == "place,region,country" {
			fmt.Fprint(w, `{"features": []}`)
			return
		}
		// Tokyo, far outside the radius.
		fmt.Fprintf(w, `{"features": [%s]}`, featureJSON(139.6917, 35.6895, "Kushida Shrine, Tokyo"))
	})

	place, err := resolver.SearchNearby(context.Background(), "Kushida Shrine", origin, 5)
	require.NoError(t, err)
	assert.Nil(t, place)
}
