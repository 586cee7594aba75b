package maps

import "context"

// MapsProvider resolves listing addresses to coordinates for map markers,
// and coordinates back to human-readable addresses.
type MapsProvider interface {
	Geocode(ctx context.Context, address string) (*GeocodeResponse, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResponse, error)
}

type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
}

type GeocodeResult struct {
	PlaceID     string   `json:"place_id"`
	Address     string   `json:"formatted_address"`
	Coordinates Location `json:"geometry"`
	Types       []string `json:"types"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Best returns the first (highest-relevance) result, or nil when the
// provider returned nothing for the query.
func (r *GeocodeResponse) Best() *GeocodeResult {
	if r == nil || len(r.Results) == 0 {
		return nil
	}
	return &r.Results[0]
}
