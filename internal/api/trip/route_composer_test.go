package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

var (
	paris     = types.Coordinate{2.3522, 48.8566}
	lyon      = types.Coordinate{4.8357, 45.7640}
	nice      = types.Coordinate{7.2620, 43.7102}
	marseille = types.Coordinate{5.3698, 43.2965}
)

func TestDistanceKm(t *testing.T) {
	// Paris to Lyon is roughly 392km great-circle.
	d := paris.DistanceKm(lyon)
	assert.InDelta(t, 392, d, 5)

	assert.Zero(t, paris.DistanceKm(paris))
	assert.InDelta(t, paris.DistanceKm(nice), nice.DistanceKm(paris), 1e-9)
}

func TestInsertPlacesCandidateBetweenNeighbours(t *testing.T) {
	// Lyon sits between Paris and Nice; insertion must put it there.
	route := Insert([]types.Coordinate{paris, nice}, []types.Coordinate{lyon})

	require.Len(t, route, 3)
	assert.Equal(t, paris, route[0])
	assert.Equal(t, lyon, route[1])
	assert.Equal(t, nice, route[2])
}

func TestInsertKeepsFixedOrder(t *testing.T) {
	fixed := []types.Coordinate{paris, lyon, nice}
	route := Insert(fixed, []types.Coordinate{marseille})

	require.Len(t, route, 4)

	// Fixed points stay in their original relative order.
	indexOf := func(c types.Coordinate) int {
		for i, p := range route {
			if p == c {
				return i
			}
		}
		return -1
	}
	assert.Equal(t, 0, indexOf(paris))
	assert.Less(t, indexOf(lyon), indexOf(nice))
	assert.Equal(t, 3, indexOf(nice))

	// Marseille is on the Lyon-Nice leg.
	assert.Equal(t, indexOf(lyon)+1, indexOf(marseille))
}

func TestInsertNeverOutsideEndpoints(t *testing.T) {
	// A candidate far beyond the end still goes between start and end.
	reykjavik := types.Coordinate{-21.8277, 64.1283}
	route := Insert([]types.Coordinate{paris, lyon}, []types.Coordinate{reykjavik})

	require.Len(t, route, 3)
	assert.Equal(t, paris, route[0])
	assert.Equal(t, reykjavik, route[1])
	assert.Equal(t, lyon, route[2])
}

func TestInsertCollinearCandidateStaysOnItsLeg(t *testing.T) {
	// A candidate lying on the first leg can produce a tiny negative added
	// cost from rounding; it must still win that slot instead of drifting
	// onto a later leg.
	a := types.Coordinate{0, 0}
	b := types.Coordinate{0.5, 0}
	c := types.Coordinate{30.5, 20}
	onLeg := types.Coordinate{0.0019, 0}

	route := Insert([]types.Coordinate{a, b, c}, []types.Coordinate{onLeg})

	require.Len(t, route, 4)
	assert.Equal(t, a, route[0])
	assert.Equal(t, onLeg, route[1])
	assert.Equal(t, b, route[2])
	assert.Equal(t, c, route[3])
}

func TestInsertNoCandidates(t *testing.T) {
	fixed := []types.Coordinate{paris, nice}
	route := Insert(fixed, nil)
	assert.Equal(t, fixed, route)
}

func TestInsertTooFewFixedPoints(t *testing.T) {
	route := Insert([]types.Coordinate{paris}, []types.Coordinate{lyon})
	assert.Equal(t, []types.Coordinate{paris}, route)
}

func TestInsertDoesNotMutateInput(t *testing.T) {
	fixed := []types.Coordinate{paris, nice}
	Insert(fixed, []types.Coordinate{lyon, marseille})
	assert.Equal(t, []types.Coordinate{paris, nice}, fixed)
}
