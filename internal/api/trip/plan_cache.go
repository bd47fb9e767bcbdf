package trip

import (
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// PlanCache stores assembled trip plans keyed by the exact request
// parameters. Two requests hit the same entry only when every field matches.
type PlanCache struct {
	store *cache.Cache
}

func NewPlanCache(ttl, cleanupInterval time.Duration) *PlanCache {
	return &PlanCache{store: cache.New(ttl, cleanupInterval)}
}

// Key derives the cache key from the request. Struct field order is fixed, so
// marshalling yields a deterministic key for identical requests.
func (c *PlanCache) Key(req types.TripPlanRequest) string {
	key, err := json.Marshal(struct {
		Waypoints         []string `json:"waypoints"`
		Vibe              float64  `json:"vibe"`
		Days              int      `json:"days"`
		CustomPreferences string   `json:"customPreferences"`
		Language          string   `json:"language"`
	}{req.Waypoints, req.Vibe, req.Days, req.CustomPreferences, req.Language})
	if err != nil {
		return ""
	}
	return string(key)
}

// Get returns the cached plan for key, if any. Cached plans are shared; the
// caller must not mutate them.
func (c *PlanCache) Get(key string) (*types.TripPlan, bool) {
	if v, found := c.store.Get(key); found {
		if plan, ok := v.(*types.TripPlan); ok {
			return plan, true
		}
	}
	return nil, false
}

func (c *PlanCache) Set(key string, plan *types.TripPlan) {
	c.store.SetDefault(key, plan)
}

func (c *PlanCache) Clear() {
	c.store.Flush()
}
