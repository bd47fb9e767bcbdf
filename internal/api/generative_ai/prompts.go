package generativeAI

import (
	"fmt"
	"strings"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

func languageInstruction(language string) string {
	if language == "zh" {
		return `请务必全程使用简体中文回答。所有地名、景点名称、描述、原因、行程故事都必须使用中文。如果地名有官方中文译名，请使用中文译名（例如：使用"清水寺"而不是"Kiyomizu-dera"）。`
	}
	return "Please respond in English. All names, descriptions, and reasons should be in English."
}

// GetTripSuggestionPrompt builds the constrained trip-brief prompt. The model
// must answer with a single JSON object carrying the five suggestion lists
// and the story itinerary.
func GetTripSuggestionPrompt(brief types.TripBrief) string {
	var b strings.Builder

	b.WriteString(languageInstruction(brief.Language))
	b.WriteString("\n\n")

	days := brief.Days
	if days < 1 {
		days = 1
	}
	fmt.Fprintf(&b, "Plan a %d-day road trip through the following locations:\n", days)
	for i, wp := range brief.Waypoints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, wp.Name)
	}

	start := brief.Waypoints[0]
	end := brief.Waypoints[len(brief.Waypoints)-1]
	if start.Coordinates != nil {
		fmt.Fprintf(&b, "\nStart coordinates: [%f, %f]\n", start.Coordinates.Lng(), start.Coordinates.Lat())
	}
	if end.Coordinates != nil {
		fmt.Fprintf(&b, "End coordinates: [%f, %f]\n", end.Coordinates.Lng(), end.Coordinates.Lat())
	}

	if intermediate := brief.Waypoints[1 : len(brief.Waypoints)-1]; len(intermediate) > 0 {
		b.WriteString("\nIntermediate stops:\n")
		for i, wp := range intermediate {
			if wp.Coordinates != nil {
				fmt.Fprintf(&b, "%d. %s: [%f, %f]\n", i+1, wp.Name, wp.Coordinates.Lng(), wp.Coordinates.Lat())
			} else {
				fmt.Fprintf(&b, "%d. %s\n", i+1, wp.Name)
			}
		}
	}

	if brief.CustomPreferences != "" {
		fmt.Fprintf(&b, "\nCUSTOM USER PREFERENCES:\n%s\n\nIMPORTANT: Prioritize these preferences when selecting waypoints and crafting the itinerary.\n", brief.CustomPreferences)
	}

	fmt.Fprintf(&b, `
SERENDIPITY LEVEL: %d/10
(0 = Maximum Efficiency, 10 = Maximum Serendipity)

CRITICAL GEOGRAPHIC RULES:
1. ALL suggested POI waypoints MUST be located between or near the user's specified route
2. Waypoints should follow the logical geographic progression through the user's stops
3. DO NOT suggest places that require significant backtracking

WAYPOINT GENERATION RULES BASED ON SERENDIPITY LEVEL:

Level 0-2 (Efficiency Focus):
- Suggest 0-1 POI stops maximum
- ONLY practical stops: gas stations, rest areas, fast food
- All stops must be directly on the route

Level 3-4 (Slight Exploration):
- Suggest 1-2 POI stops
- Famous landmarks or popular restaurants within 5km of route

Level 5-6 (Balanced):
- Suggest 2-3 POI stops
- Mix of popular attractions and local favorites
- Small detours (up to 15km) acceptable

Level 7-8 (Adventure):
- Suggest 3-4 POI stops
- Include "hidden gems" and local secrets
- Detours up to 25km acceptable

Level 9-10 (Maximum Serendipity):
- Suggest 4-5 POI stops
- Prioritize unique, off-the-beaten-path experiences
- Detours up to 30km for exceptional places
- Generate 5+ "extra_suggestions" for spontaneous exploration

For each POI stop, provide:
- name: Name of the place
- type: EXACTLY one of: "food", "sight", "shop", or "activity" (lowercase only)
- description: Short description (1 sentence)
- reason: Why this fits serendipity level %d
- rating: A float between 4.0 and 5.0 (e.g. 4.8)
- location: A specific address or city name
- image_keyword: Visual keyword phrase for image search (keep in English)

Also provide:
1. 6-8 "start_location_suggestions": Must-visit places in the START city (%s). Focus on dense city center attractions.
2. 6-8 "end_location_suggestions": Must-visit places in the END city (%s). Focus on dense city center attractions.
3. 5-8 "extra_suggestions": Interesting places NEAR the route (but not on it).
4. 3-5 "route_waypoints": Specific, interesting stops DIRECTLY ON the driving route between waypoints.

Finally, generate a "story_itinerary" in Markdown format:
- Warm, engaging, travel-blogger style narrative
- Organize by day (Day 1, Day 2, etc.)
- Mention the user's specified stops AND your suggested POI stops
- Add pro tips and vibe checks
- **IMPORTANT**: When describing the start and end cities, mention the specific places from your suggestions list.

Return ONLY valid JSON in this format:
{
  "waypoints": [
    { "name": "...", "type": "food", "description": "...", "reason": "...", "rating": 4.5, "location": "...", "image_keyword": "..." }
  ],
  "start_location_suggestions": [
    { "name": "...", "type": "sight", "description": "...", "reason": "...", "rating": 4.5, "location": "...", "image_keyword": "..." }
  ],
  "end_location_suggestions": [
    { "name": "...", "type": "sight", "description": "...", "reason": "...", "rating": 4.5, "location": "...", "image_keyword": "..." }
  ],
  "extra_suggestions": [
    { "name": "...", "type": "sight", "description": "...", "reason": "...", "rating": 4.5, "location": "...", "image_keyword": "..." }
  ],
  "route_waypoints": [
    { "name": "...", "type": "sight", "description": "...", "reason": "...", "rating": 4.5, "location": "...", "image_keyword": "..." }
  ],
  "story_itinerary": "# Your Trip...\n\n## Day 1\n..."
}
`, brief.SerendipityLevel, brief.SerendipityLevel, start.Name, end.Name)

	return b.String()
}

// GetNearbyPlacesPrompt asks for 3-5 real, map-findable places near the given
// location. Names only; coordinates come from the geocoder afterwards.
func GetNearbyPlacesPrompt(location string, origin types.Coordinate, language string) string {
	var b strings.Builder

	b.WriteString(languageInstruction(language))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, `Find 3-5 REAL, WELL-KNOWN places near "%s".
Main location coordinates: [%f, %f]

CRITICAL REQUIREMENTS:
1. These must be REAL places that actually exist and can be found on Google Maps or Mapbox
2. Use the EXACT official name as it appears on maps (e.g., "Kushida Shrine", "Ichiran Ramen Hakata", "Canal City Hakata")
3. All places must be within 3km of the main location
4. Provide diverse types (at least one food, one sight)
5. DO NOT make up places - only suggest well-known, established locations

For each place, provide ONLY:
- name: EXACT official place name ONLY (name only, no address)
- type: MUST be EXACTLY one of: "food", "sight", "shop", or "activity" (lowercase only)
- description: Brief 1-sentence description
- rating: Realistic rating between 4.0 and 5.0 (e.g. 4.6)
- review_count: Number of reviews (100-5000)
- image_keyword: Visual search keyword for image (keep in English for better image results)

DO NOT include coordinates or full addresses - we will search for these places on the map using their names.

Return ONLY valid JSON:
{
  "nearby_places": [
    { "name": "Place Name Only", "type": "food", "description": "...", "rating": 4.5, "review_count": 1200, "image_keyword": "..." }
  ]
}
`, location, origin.Lng(), origin.Lat())

	return b.String()
}
