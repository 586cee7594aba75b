package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"venuehub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seed locations are built-in, read-only first-run content. They are served
// from the fallback path when the primary store is unreachable and they can
// never be deleted.

func seedObjectID(hex string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(hex)
	return id
}

func defaultSeedLocations() []*models.Location {
	createdAt := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	return []*models.Location{
		{
			ID:          seedObjectID("65e0000000000000000000a1"),
			Title:       "Daylight Photo Studio",
			Description: "Corner studio with floor-to-ceiling windows and a white cyclorama.",
			Address:     "12 Harbor Lane",
			Price:       85,
			Area:        120,
			Images:      []string{"https://images.venuehub.dev/seed/daylight-1.jpg", "https://images.venuehub.dev/seed/daylight-2.jpg"},
			Amenities:   []string{"wifi", "parking", "natural_light"},
			Rules:       []string{"no smoking"},
			Status:      models.LocationStatusPublished,
			Coordinates: &models.Coordinates{Latitude: 55.7601, Longitude: 37.6189},
			Features: &models.LocationFeatures{
				MaxCapacity:       15,
				ParkingSpots:      2,
				EquipmentIncluded: true,
				Accessibility:     true,
			},
			Rating:              4.8,
			Reviews:             24,
			MinimumBookingHours: 2,
			CreatedAt:           createdAt,
			UpdatedAt:           createdAt,
		},
		{
			ID:          seedObjectID("65e0000000000000000000a2"),
			Title:       "Brick Loft Event Space",
			Description: "Exposed brick loft for small events, workshops and screenings.",
			Address:     "48 Foundry Street",
			Price:       140,
			Area:        210,
			Images:      []string{"https://images.venuehub.dev/seed/loft-1.jpg"},
			Amenities:   []string{"wifi", "kitchen", "sound_system"},
			Rules:       []string{"no smoking", "no pets"},
			Status:      models.LocationStatusPublished,
			Coordinates: &models.Coordinates{Latitude: 55.7489, Longitude: 37.6337},
			Features: &models.LocationFeatures{
				MaxCapacity:  60,
				ParkingSpots: 0,
			},
			Rating:              4.5,
			Reviews:             11,
			MinimumBookingHours: 4,
			CreatedAt:           createdAt.Add(24 * time.Hour),
			UpdatedAt:           createdAt.Add(24 * time.Hour),
		},
	}
}

// LoadSeed returns the seed dataset, optionally extended from a JSON file.
// The returned slice is fresh on every call so callers cannot mutate the
// built-in records.
func LoadSeed(path string) ([]*models.Location, error) {
	seeds := defaultSeedLocations()

	if path == "" {
		return seeds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var extra []*models.Location
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	return append(seeds, extra...), nil
}
