package trip

import (
	"math"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// Insert merges candidate stops into a fixed, ordered waypoint list using
// greedy cheapest insertion: each candidate goes into the slot that adds the
// least Haversine distance. The relative order of the fixed points never
// changes, and nothing is inserted before the start or after the end.
func Insert(fixed []types.Coordinate, candidates []types.Coordinate) []types.Coordinate {
	route := make([]types.Coordinate, len(fixed))
	copy(route, fixed)

	if len(route) < 2 {
		return route
	}

	for _, candidate := range candidates {
		bestIndex := 1
		bestAdded := math.Inf(1)

		for i := 1; i < len(route); i++ {
			prev := route[i-1]
			next := route[i]
			added := prev.DistanceKm(candidate) + candidate.DistanceKm(next) - prev.DistanceKm(next)
			if added < bestAdded {
				bestAdded = added
				bestIndex = i
			}
		}

		route = append(route, types.Coordinate{})
		copy(route[bestIndex+1:], route[bestIndex:])
		route[bestIndex] = candidate
	}

	return route
}
