package trip

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jacksu4/Vibe-Travel/internal/types"
)

// Generative models wrap JSON in markdown fences, add comments, or leave
// trailing commas. The sanitizer repairs the common defects before parsing
// instead of failing the whole request.

var (
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	lineCommentRe   = regexp.MustCompile(`(?m)//.*$`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	controlCharRe   = regexp.MustCompile(`[\x00-\x1f\x{7f}-\x{9f}]`)
)

// SanitizeModelJSON extracts the JSON object embedded in raw model text and
// repairs common syntax defects. It does not validate the content.
func SanitizeModelJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}

	cleaned := raw[start : end+1]
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = blockCommentRe.ReplaceAllString(cleaned, "")
	cleaned = lineCommentRe.ReplaceAllString(cleaned, "")
	cleaned = trailingCommaRe.ReplaceAllString(cleaned, "$1")
	return strings.TrimSpace(cleaned), nil
}

// ParseSuggestionPayload repairs and decodes the model's answer to a trip
// brief. Parsing is attempted twice: once on the cleaned text and, if that
// fails, once more with control characters stripped. Suggestion entries with
// an invalid type are dropped rather than failing the payload.
func ParseSuggestionPayload(raw string) (*types.SuggestionPayload, error) {
	cleaned, err := SanitizeModelJSON(raw)
	if err != nil {
		return nil, &types.MalformedSuggestionError{Raw: raw, Err: err}
	}

	var payload rawSuggestionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		stripped := controlCharRe.ReplaceAllString(cleaned, "")
		if retryErr := json.Unmarshal([]byte(stripped), &payload); retryErr != nil {
			return nil, &types.MalformedSuggestionError{Raw: raw, Cleaned: cleaned, Err: err}
		}
	}

	if payload.Waypoints == nil {
		return nil, &types.MalformedSuggestionError{
			Raw:     raw,
			Cleaned: cleaned,
			Err:     fmt.Errorf("missing required waypoints array"),
		}
	}

	return &types.SuggestionPayload{
		Waypoints:                DecodeSuggestedPlaces(payload.Waypoints),
		StartLocationSuggestions: DecodeSuggestedPlaces(payload.StartLocationSuggestions),
		EndLocationSuggestions:   DecodeSuggestedPlaces(payload.EndLocationSuggestions),
		ExtraSuggestions:         DecodeSuggestedPlaces(payload.ExtraSuggestions),
		RouteWaypoints:           DecodeSuggestedPlaces(payload.RouteWaypoints),
		StoryItinerary:           payload.StoryItinerary,
	}, nil
}

// rawSuggestionPayload keeps list entries as raw JSON so one bad entry can be
// skipped without discarding its siblings.
type rawSuggestionPayload struct {
	Waypoints                []json.RawMessage `json:"waypoints"`
	StartLocationSuggestions []json.RawMessage `json:"start_location_suggestions"`
	EndLocationSuggestions   []json.RawMessage `json:"end_location_suggestions"`
	ExtraSuggestions         []json.RawMessage `json:"extra_suggestions"`
	RouteWaypoints           []json.RawMessage `json:"route_waypoints"`
	StoryItinerary           string            `json:"story_itinerary"`
}

// DecodeSuggestedPlaces decodes a list of suggestion entries, dropping those
// that fail to decode, have no name, or carry an unknown place type.
func DecodeSuggestedPlaces(entries []json.RawMessage) []types.SuggestedPlace {
	places := make([]types.SuggestedPlace, 0, len(entries))
	for _, entry := range entries {
		var place types.SuggestedPlace
		if err := json.Unmarshal(entry, &place); err != nil {
			continue
		}
		if place.Name == "" || !place.Type.Valid() {
			continue
		}
		places = append(places, place)
	}
	return places
}
