package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

func TestPlanCacheKeyDeterministic(t *testing.T) {
	c := NewPlanCache(time.Minute, time.Minute)

	req := types.TripPlanRequest{
		Waypoints:         []string{"Paris", "Nice"},
		Vibe:              70,
		Days:              3,
		CustomPreferences: "wine",
		Language:          "en",
	}
	same := types.TripPlanRequest{
		Waypoints:         []string{"Paris", "Nice"},
		Vibe:              70,
		Days:              3,
		CustomPreferences: "wine",
		Language:          "en",
	}
	assert.Equal(t, c.Key(req), c.Key(same))
}

func TestPlanCacheKeySensitiveToEveryField(t *testing.T) {
	c := NewPlanCache(time.Minute, time.Minute)
	base := types.TripPlanRequest{Waypoints: []string{"Paris", "Nice"}, Vibe: 70, Days: 3, Language: "en"}

	variants := []types.TripPlanRequest{
		{Waypoints: []string{"Nice", "Paris"}, Vibe: 70, Days: 3, Language: "en"},
		{Waypoints: []string{"Paris", "Nice"}, Vibe: 80, Days: 3, Language: "en"},
		{Waypoints: []string{"Paris", "Nice"}, Vibe: 70, Days: 4, Language: "en"},
		{Waypoints: []string{"Paris", "Nice"}, Vibe: 70, Days: 3, Language: "zh"},
		{Waypoints: []string{"Paris", "Nice"}, Vibe: 70, Days: 3, CustomPreferences: "wine", Language: "en"},
	}
	for _, v := range variants {
		assert.NotEqual(t, c.Key(base), c.Key(v))
	}
}

func TestPlanCacheRoundTrip(t *testing.T) {
	c := NewPlanCache(time.Minute, time.Minute)
	req := types.TripPlanRequest{Waypoints: []string{"Paris", "Nice"}, Vibe: 50, Days: 2}
	key := c.Key(req)

	_, found := c.Get(key)
	assert.False(t, found)

	plan := &types.TripPlan{Itinerary: "# Day 1"}
	c.Set(key, plan)

	got, found := c.Get(key)
	require.True(t, found)
	assert.Same(t, plan, got)

	c.Clear()
	_, found = c.Get(key)
	assert.False(t, found)
}
