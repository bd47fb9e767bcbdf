package trip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

func TestSanitizeModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "fenced json",
			raw:  "Here is your plan:\n```json\n{\"waypoints\": []}\n```",
			want: `{"waypoints": []}`,
		},
		{
			name: "trailing commas",
			raw:  `{"waypoints": [{"name": "a",},],}`,
			want: `{"waypoints": [{"name": "a"}]}`,
		},
		{
			name: "line comments",
			raw:  "{\"waypoints\": [] // the list\n}",
			want: "{\"waypoints\": [] \n}",
		},
		{
			name:    "no braces",
			raw:     "no braces here",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeModelJSON(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSuggestionPayload(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		raw := "```json\n" + `{
			"waypoints": [
				{"name": "Lyon Market", "type": "food", "description": "Food hall", "rating": 4.7, "location": "Lyon"}
			],
			"start_location_suggestions": [
				{"name": "Louvre", "type": "sight", "rating": 4.8}
			],
			"end_location_suggestions": [],
			"extra_suggestions": [],
			"route_waypoints": [],
			"story_itinerary": "# Day 1"
		}` + "\n```"

		payload, err := ParseSuggestionPayload(raw)
		require.NoError(t, err)
		require.Len(t, payload.Waypoints, 1)
		assert.Equal(t, "Lyon Market", payload.Waypoints[0].Name)
		assert.Equal(t, types.PlaceTypeFood, payload.Waypoints[0].Type)
		require.Len(t, payload.StartLocationSuggestions, 1)
		assert.Equal(t, "# Day 1", payload.StoryItinerary)
	})

	t.Run("empty waypoints array is valid", func(t *testing.T) {
		payload, err := ParseSuggestionPayload(`{"waypoints": [], "story_itinerary": "quiet trip"}`)
		require.NoError(t, err)
		assert.Empty(t, payload.Waypoints)
		assert.Equal(t, "quiet trip", payload.StoryItinerary)
	})

	t.Run("missing waypoints array", func(t *testing.T) {
		_, err := ParseSuggestionPayload(`{"story_itinerary": "no lists"}`)
		var malformed *types.MalformedSuggestionError
		require.True(t, errors.As(err, &malformed))
		assert.NotEmpty(t, malformed.Cleaned)
	})

	t.Run("no json at all", func(t *testing.T) {
		_, err := ParseSuggestionPayload("I could not produce a plan, sorry.")
		var malformed *types.MalformedSuggestionError
		require.True(t, errors.As(err, &malformed))
	})

	t.Run("control characters repaired on retry", func(t *testing.T) {
		raw := "{\"waypoints\": [{\"name\": \"Caf\x01e\", \"type\": \"food\", \"rating\": 4.5}], \"story_itinerary\": \"x\"}"
		payload, err := ParseSuggestionPayload(raw)
		require.NoError(t, err)
		require.Len(t, payload.Waypoints, 1)
		assert.Equal(t, "Cafe", payload.Waypoints[0].Name)
	})

	t.Run("high control range stripped on retry", func(t *testing.T) {
		// U+007F and U+009F sit in the upper control block; the retry pass
		// must remove them along with the low range.
		raw := "{\"waypoints\": [{\"name\": \"Caf\x02\u007f\u009fe\", \"type\": \"food\", \"rating\": 4.5}], \"story_itinerary\": \"x\"}"
		payload, err := ParseSuggestionPayload(raw)
		require.NoError(t, err)
		require.Len(t, payload.Waypoints, 1)
		assert.Equal(t, "Cafe", payload.Waypoints[0].Name)
	})

	t.Run("invalid entries dropped", func(t *testing.T) {
		raw := `{
			"waypoints": [
				{"name": "Good", "type": "sight", "rating": 4.5},
				{"name": "Bad Type", "type": "museum", "rating": 4.5},
				{"type": "food", "rating": 4.5},
				"not even an object"
			],
			"story_itinerary": ""
		}`
		payload, err := ParseSuggestionPayload(raw)
		require.NoError(t, err)
		require.Len(t, payload.Waypoints, 1)
		assert.Equal(t, "Good", payload.Waypoints[0].Name)
	})
}
