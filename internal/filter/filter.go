// Package filter narrows and orders already-fetched listing slices. It is
// pure and synchronous, so callers can re-run it on every query change.
package filter

import (
	"sort"
	"strings"

	"venuehub/internal/models"
)

type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByRating    SortKey = "rating"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query is the full in-memory narrowing applied to a listing slice: text
// search, range and amenity filters, then ordering.
type Query struct {
	Search string
	Filter *models.LocationFilter
	SortBy SortKey
	Order  SortOrder
}

// Apply returns a new slice holding the locations matching the query, in the
// requested order. The input slice is never reordered or modified.
func Apply(locations []*models.Location, query Query) []*models.Location {
	result := make([]*models.Location, 0, len(locations))
	for _, loc := range locations {
		if !matchesSearch(loc, query.Search) {
			continue
		}
		if !query.Filter.Matches(loc) {
			continue
		}
		result = append(result, loc)
	}

	Sort(result, query.SortBy, query.Order)
	return result
}

// matchesSearch does a case-insensitive substring match against title or
// address. An empty query matches everything.
func matchesSearch(loc *models.Location, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}

	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(loc.Title), needle) ||
		strings.Contains(strings.ToLower(loc.Address), needle)
}

// Sort orders the slice in place. Ties keep their current relative order, so
// a freshly filtered list stays in insertion order. An unset sort key defaults
// to newest-created first.
func Sort(locations []*models.Location, key SortKey, order SortOrder) {
	if key == "" {
		key = SortByCreatedAt
	}
	if order == "" {
		order = SortDesc
	}

	less := lessFunc(locations, key)
	if order == SortDesc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(locations, less)
}

func lessFunc(locations []*models.Location, key SortKey) func(i, j int) bool {
	switch key {
	case SortByRating:
		// A listing without reviews sorts as rating 0.
		return func(i, j int) bool {
			return locations[i].Rating < locations[j].Rating
		}
	default:
		return func(i, j int) bool {
			return locations[i].CreatedAt.Before(locations[j].CreatedAt)
		}
	}
}
