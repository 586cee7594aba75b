package filter_test

import (
	"testing"
	"time"

	"venuehub/internal/filter"
	"venuehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }

func listing(title string, opts func(*models.Location)) *models.Location {
	loc := &models.Location{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Address:   "1 Test Street",
		Status:    models.LocationStatusPublished,
		CreatedAt: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
	if opts != nil {
		opts(loc)
	}
	return loc
}

func titles(locations []*models.Location) []string {
	result := make([]string, 0, len(locations))
	for _, loc := range locations {
		result = append(result, loc.Title)
	}
	return result
}

func TestApplySearchMatchesTitleOrAddress(t *testing.T) {
	locations := []*models.Location{
		listing("Daylight Studio", nil),
		listing("Brick Loft", func(l *models.Location) { l.Address = "12 Daylight Avenue" }),
		listing("Rooftop Terrace", nil),
	}

	result := filter.Apply(locations, filter.Query{Search: "daylight"})

	assert.ElementsMatch(t, []string{"Daylight Studio", "Brick Loft"}, titles(result))
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	locations := []*models.Location{listing("Daylight Studio", nil)}

	result := filter.Apply(locations, filter.Query{Search: "  DAYLIGHT  "})

	require.Len(t, result, 1)
}

func TestApplyPriceRangeBoundsAreInclusive(t *testing.T) {
	locations := []*models.Location{
		listing("cheap", func(l *models.Location) { l.Price = 99 }),
		listing("low-edge", func(l *models.Location) { l.Price = 100 }),
		listing("high-edge", func(l *models.Location) { l.Price = 200 }),
		listing("expensive", func(l *models.Location) { l.Price = 201 }),
	}

	result := filter.Apply(locations, filter.Query{
		Filter: &models.LocationFilter{MinPrice: floatPtr(100), MaxPrice: floatPtr(200)},
	})

	assert.ElementsMatch(t, []string{"low-edge", "high-edge"}, titles(result))
}

func TestApplyAreaRange(t *testing.T) {
	locations := []*models.Location{
		listing("small", func(l *models.Location) { l.Area = 40 }),
		listing("medium", func(l *models.Location) { l.Area = 120 }),
	}

	result := filter.Apply(locations, filter.Query{
		Filter: &models.LocationFilter{MinArea: floatPtr(50)},
	})

	assert.Equal(t, []string{"medium"}, titles(result))
}

// A listing must carry every requested amenity, not just one of them.
func TestApplyAmenitiesRequireAll(t *testing.T) {
	locations := []*models.Location{
		listing("wifi-only", func(l *models.Location) { l.Amenities = []string{"wifi"} }),
		listing("both", func(l *models.Location) { l.Amenities = []string{"wifi", "parking", "kitchen"} }),
		listing("none", nil),
	}

	result := filter.Apply(locations, filter.Query{
		Filter: &models.LocationFilter{Amenities: []string{"wifi", "parking"}},
	})

	assert.Equal(t, []string{"both"}, titles(result))
}

func TestApplyDefaultsToNewestFirst(t *testing.T) {
	base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	locations := []*models.Location{
		listing("oldest", func(l *models.Location) { l.CreatedAt = base }),
		listing("newest", func(l *models.Location) { l.CreatedAt = base.Add(48 * time.Hour) }),
		listing("middle", func(l *models.Location) { l.CreatedAt = base.Add(24 * time.Hour) }),
	}

	result := filter.Apply(locations, filter.Query{})

	assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(result))
}

func TestSortByRatingDescendingPutsUnratedLast(t *testing.T) {
	locations := []*models.Location{
		listing("unrated", nil),
		listing("great", func(l *models.Location) { l.Rating = 4.9 }),
		listing("okay", func(l *models.Location) { l.Rating = 3.2 }),
	}

	filter.Sort(locations, filter.SortByRating, filter.SortDesc)

	assert.Equal(t, []string{"great", "okay", "unrated"}, titles(locations))
}

func TestSortAscending(t *testing.T) {
	locations := []*models.Location{
		listing("great", func(l *models.Location) { l.Rating = 4.9 }),
		listing("okay", func(l *models.Location) { l.Rating = 3.2 }),
	}

	filter.Sort(locations, filter.SortByRating, filter.SortAsc)

	assert.Equal(t, []string{"okay", "great"}, titles(locations))
}

// Equal keys keep their incoming order in both directions.
func TestSortIsStableOnTies(t *testing.T) {
	locations := []*models.Location{
		listing("first", func(l *models.Location) { l.Rating = 4.0 }),
		listing("second", func(l *models.Location) { l.Rating = 4.0 }),
		listing("third", func(l *models.Location) { l.Rating = 4.0 }),
	}

	filter.Sort(locations, filter.SortByRating, filter.SortDesc)
	assert.Equal(t, []string{"first", "second", "third"}, titles(locations))

	filter.Sort(locations, filter.SortByRating, filter.SortAsc)
	assert.Equal(t, []string{"first", "second", "third"}, titles(locations))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	locations := []*models.Location{
		listing("oldest", func(l *models.Location) { l.CreatedAt = base }),
		listing("newest", func(l *models.Location) { l.CreatedAt = base.Add(time.Hour) }),
	}

	_ = filter.Apply(locations, filter.Query{SortBy: filter.SortByCreatedAt, Order: filter.SortDesc})

	assert.Equal(t, []string{"oldest", "newest"}, titles(locations))
}

func TestApplyNilFilterMatchesEverything(t *testing.T) {
	locations := []*models.Location{listing("a", nil), listing("b", nil)}

	result := filter.Apply(locations, filter.Query{})

	assert.Len(t, result, 2)
}
