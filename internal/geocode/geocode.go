// Package geocode resolves place names and addresses to coordinates.
package geocode

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized means the provider rejected the client credentials.
	ErrUnauthorized = errors.New("geocoder authentication failed")
	// ErrForbidden means the credentials lack permission for the API.
	ErrForbidden = errors.New("geocoder access forbidden")
	// ErrRateLimited means the provider quota is exhausted for now.
	ErrRateLimited = errors.New("geocoder rate limited")
	// ErrLookupFailed wraps any other provider failure, such as a 5xx or a
	// transport error, so it is never mistaken for an empty result.
	ErrLookupFailed = errors.New("place lookup failed")
)

// Result is a resolved location. Lat and Lng are WGS84 degrees.
type Result struct {
	Query       string  `json:"query"`
	Title       string  `json:"title"`
	Category    string  `json:"category,omitempty"`
	Address     string  `json:"address,omitempty"`
	RoadAddress string  `json:"roadAddress,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Geocoder looks up a free-form query. An unknown place yields an empty
// slice and no error.
type Geocoder interface {
	Lookup(ctx context.Context, query string) ([]Result, error)
}

// IsServiceError reports whether err is one of the provider-level
// failures that will repeat for every query.
func IsServiceError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrRateLimited)
}
