package generativeAI

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

func testBrief(language string) types.TripBrief {
	paris := types.Coordinate{2.3522, 48.8566}
	lyon := types.Coordinate{4.8357, 45.7640}
	nice := types.Coordinate{7.2620, 43.7102}
	return types.TripBrief{
		Waypoints: []types.Waypoint{
			{Name: "Paris", Coordinates: &paris},
			{Name: "Lyon", Coordinates: &lyon},
			{Name: "Nice", Coordinates: &nice},
		},
		Days:             3,
		SerendipityLevel: 7,
		Language:         language,
	}
}

func TestGetTripSuggestionPrompt(t *testing.T) {
	prompt := GetTripSuggestionPrompt(testBrief("en"))

	assert.Contains(t, prompt, "Plan a 3-day road trip")
	assert.Contains(t, prompt, "1. Paris")
	assert.Contains(t, prompt, "3. Nice")
	assert.Contains(t, prompt, "SERENDIPITY LEVEL: 7/10")
	assert.Contains(t, prompt, "Intermediate stops:")
	assert.Contains(t, prompt, "1. Lyon:")
	assert.Contains(t, prompt, "START city (Paris)")
	assert.Contains(t, prompt, "END city (Nice)")
	assert.Contains(t, prompt, `"story_itinerary"`)
	assert.Contains(t, prompt, "respond in English")
}

func TestGetTripSuggestionPromptChinese(t *testing.T) {
	prompt := GetTripSuggestionPrompt(testBrief("zh"))
	assert.Contains(t, prompt, "简体中文")
}

func TestGetTripSuggestionPromptCustomPreferences(t *testing.T) {
	brief := testBrief("en")

	withoutPrefs := GetTripSuggestionPrompt(brief)
	assert.NotContains(t, withoutPrefs, "CUSTOM USER PREFERENCES")

	brief.CustomPreferences = "vegetarian restaurants only"
	withPrefs := GetTripSuggestionPrompt(brief)
	assert.Contains(t, withPrefs, "CUSTOM USER PREFERENCES")
	assert.Contains(t, withPrefs, "vegetarian restaurants only")
}

func TestGetTripSuggestionPromptDefaultsDays(t *testing.T) {
	brief := testBrief("en")
	brief.Days = 0
	prompt := GetTripSuggestionPrompt(brief)
	assert.Contains(t, prompt, "Plan a 1-day road trip")
}

func TestGetNearbyPlacesPrompt(t *testing.T) {
	prompt := GetNearbyPlacesPrompt("Hakata", types.Coordinate{130.4017, 33.5902}, "en")

	assert.Contains(t, prompt, `near "Hakata"`)
	assert.Contains(t, prompt, "130.40")
	assert.Contains(t, prompt, `"nearby_places"`)
	assert.Contains(t, prompt, "review_count")
}
