package types

import (
	"math"

	"github.com/paulmach/orb/geojson"
)

// Coordinate is a WGS84 position in [longitude, latitude] order, matching the
// Mapbox wire format used by the geocoding and directions APIs.
type Coordinate [2]float64

func (c Coordinate) Lng() float64 { return c[0] }
func (c Coordinate) Lat() float64 { return c[1] }

// Valid reports whether the coordinate is inside the WGS84 envelope.
func (c Coordinate) Valid() bool {
	return c[0] >= -180 && c[0] <= 180 && c[1] >= -90 && c[1] <= 90
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance to other in kilometres using
// the Haversine formula. Both the route composer and the nearby-places filter
// go through this single implementation.
func (c Coordinate) DistanceKm(other Coordinate) float64 {
	dLat := toRad(other.Lat() - c.Lat())
	dLon := toRad(other.Lng() - c.Lng())

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(c.Lat()))*math.Cos(toRad(other.Lat()))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Waypoint is a user-specified stop. Coordinates stay nil until the geocoder
// resolves the name.
type Waypoint struct {
	Name        string      `json:"name"`
	Coordinates *Coordinate `json:"coordinates"`
}

// PlaceType classifies an AI-suggested place.
type PlaceType string

const (
	PlaceTypeFood     PlaceType = "food"
	PlaceTypeSight    PlaceType = "sight"
	PlaceTypeShop     PlaceType = "shop"
	PlaceTypeActivity PlaceType = "activity"
)

// Valid reports whether the type is one of the four allowed values.
func (t PlaceType) Valid() bool {
	switch t {
	case PlaceTypeFood, PlaceTypeSight, PlaceTypeShop, PlaceTypeActivity:
		return true
	}
	return false
}

// SuggestedPlace is a point of interest proposed by the suggestion model.
// Coordinates are attached after geocoding; DistanceKm and ResolvedName are
// only populated by the nearby-places flow.
type SuggestedPlace struct {
	Name         string      `json:"name"`
	Type         PlaceType   `json:"type"`
	Description  string      `json:"description"`
	Reason       string      `json:"reason,omitempty"`
	Rating       float64     `json:"rating"`
	Location     string      `json:"location,omitempty"`
	ImageKeyword string      `json:"image_keyword,omitempty"`
	ReviewCount  int         `json:"review_count,omitempty"`
	Coordinates  *Coordinate `json:"coordinates,omitempty"`
	DistanceKm   float64     `json:"distance,omitempty"`
	ResolvedName string      `json:"resolved_name,omitempty"`
}

// SuggestionPayload is the validated structure extracted from the model's
// free-text answer to a trip brief.
type SuggestionPayload struct {
	Waypoints                []SuggestedPlace `json:"waypoints"`
	StartLocationSuggestions []SuggestedPlace `json:"start_location_suggestions"`
	EndLocationSuggestions   []SuggestedPlace `json:"end_location_suggestions"`
	ExtraSuggestions         []SuggestedPlace `json:"extra_suggestions"`
	RouteWaypoints           []SuggestedPlace `json:"route_waypoints"`
	StoryItinerary           string           `json:"story_itinerary"`
}

// TripPlanRequest is the plan-trip request body.
type TripPlanRequest struct {
	Waypoints         []string `json:"waypoints"`
	Vibe              float64  `json:"vibe"`
	Days              int      `json:"days"`
	CustomPreferences string   `json:"customPreferences,omitempty"`
	Language          string   `json:"language,omitempty"`
}

// SerendipityLevel maps the 0-100 vibe dial onto the 0-10 scale the
// suggestion prompt works with.
func (r TripPlanRequest) SerendipityLevel() int {
	return int(math.Round(r.Vibe / 10))
}

// TripBrief is the structured input handed to the suggestion client: the
// user's waypoints with resolved coordinates plus the trip parameters.
type TripBrief struct {
	Waypoints         []Waypoint
	Days              int
	SerendipityLevel  int
	CustomPreferences string
	Language          string
}

// TripPlan is the assembled plan-trip response. Once stored in the plan cache
// it is shared between readers and must not be mutated.
type TripPlan struct {
	Start            Waypoint          `json:"start"`
	End              Waypoint          `json:"end"`
	UserWaypoints    []Waypoint        `json:"userWaypoints"`
	Waypoints        []SuggestedPlace  `json:"waypoints"`
	ExtraSuggestions []SuggestedPlace  `json:"extraSuggestions"`
	Route            *geojson.Geometry `json:"route"`
	Itinerary        string            `json:"itinerary"`
}

// NearbyRequest is the nearby-places request body.
type NearbyRequest struct {
	Location    string      `json:"location"`
	Coordinates *Coordinate `json:"coordinates"`
	Language    string      `json:"language,omitempty"`
}

// NearbyResponse wraps the filtered nearby places.
type NearbyResponse struct {
	NearbyPlaces []SuggestedPlace `json:"nearby_places"`
}

// PlacePhotosRequest is the place-photos request body.
type PlacePhotosRequest struct {
	Name        string      `json:"name"`
	Coordinates *Coordinate `json:"coordinates"`
}

// PlacePhoto is a single photo URL returned by the photo lookup.
type PlacePhoto struct {
	URL string `json:"url"`
}

// PlacePhotosResponse wraps the photo lookup result.
type PlacePhotosResponse struct {
	Photos []PlacePhoto `json:"photos"`
	Count  int          `json:"count"`
}
