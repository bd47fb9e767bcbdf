package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks request validation failures (HTTP 400).
var ErrInvalidInput = errors.New("invalid input")

// GeocodeFailedError reports user waypoints the geocoder could not resolve.
// It is a request-level failure (HTTP 400) and always names the offenders.
type GeocodeFailedError struct {
	Names []string
}

func (e *GeocodeFailedError) Error() string {
	return fmt.Sprintf("could not find coordinates for: %s", strings.Join(e.Names, ", "))
}

// SuggestionError wraps an upstream failure of the generative-suggestion
// service (HTTP 500).
type SuggestionError struct {
	Err error
}

func (e *SuggestionError) Error() string {
	return fmt.Sprintf("suggestion service failed: %v", e.Err)
}

func (e *SuggestionError) Unwrap() error { return e.Err }

// MalformedSuggestionError means the model's output could not be repaired
// into the expected payload after both parse attempts. Raw and Cleaned are
// kept for diagnosis (HTTP 500 with details).
type MalformedSuggestionError struct {
	Raw     string
	Cleaned string
	Err     error
}

func (e *MalformedSuggestionError) Error() string {
	return fmt.Sprintf("malformed suggestion payload: %v", e.Err)
}

func (e *MalformedSuggestionError) Unwrap() error { return e.Err }
