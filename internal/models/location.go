package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationStatus string

const (
	LocationStatusDraft     LocationStatus = "draft"
	LocationStatusPublished LocationStatus = "published"
	LocationStatusArchived  LocationStatus = "archived"
)

type Location struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID             primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	Title               string             `json:"title" bson:"title" validate:"required"`
	Description         string             `json:"description" bson:"description"`
	Address             string             `json:"address" bson:"address" validate:"required"`
	Price               float64            `json:"price" bson:"price"`
	Area                float64            `json:"area" bson:"area"`
	Images              []string           `json:"images" bson:"images"`
	Amenities           []string           `json:"amenities" bson:"amenities"`
	Rules               []string           `json:"rules" bson:"rules"`
	Tags                []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Status              LocationStatus     `json:"status" bson:"status" default:"draft"`
	Coordinates         *Coordinates       `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Features            *LocationFeatures  `json:"features,omitempty" bson:"features,omitempty"`
	Availability        *Availability      `json:"availability,omitempty" bson:"availability,omitempty"`
	Rating              float64            `json:"rating,omitempty" bson:"rating,omitempty"`
	Reviews             int                `json:"reviews,omitempty" bson:"reviews,omitempty"`
	Bookings            BookingStats       `json:"bookings" bson:"bookings"`
	MinimumBookingHours int                `json:"minimum_booking_hours,omitempty" bson:"minimum_booking_hours,omitempty"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`

	// AccessLevel is resolved per request for share-token callers. It is
	// never persisted.
	AccessLevel AccessLevel `json:"access_level,omitempty" bson:"-"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" bson:"longitude" validate:"min=-180,max=180"`
}

type LocationFeatures struct {
	MaxCapacity       int  `json:"max_capacity" bson:"max_capacity"`
	ParkingSpots      int  `json:"parking_spots" bson:"parking_spots"`
	EquipmentIncluded bool `json:"equipment_included" bson:"equipment_included"`
	Accessibility     bool `json:"accessibility" bson:"accessibility"`
}

type Availability struct {
	OpenTime      string   `json:"open_time" bson:"open_time"`
	CloseTime     string   `json:"close_time" bson:"close_time"`
	DaysAvailable []string `json:"days_available" bson:"days_available"`
}

type BookingStats struct {
	TotalBookings int     `json:"total_bookings" bson:"total_bookings"`
	AverageRating float64 `json:"average_rating" bson:"average_rating"`
}

func (l *Location) IsPublished() bool {
	return l.Status == LocationStatusPublished
}

func (l *Location) IsOwnedBy(userID primitive.ObjectID) bool {
	return !userID.IsZero() && l.OwnerID == userID
}

// LocationFilter carries the list-query filters. Range bounds are pushed down
// to the store; amenity intersection is applied in memory on the fallback path.
type LocationFilter struct {
	MinPrice  *float64 `json:"min_price,omitempty" form:"min_price"`
	MaxPrice  *float64 `json:"max_price,omitempty" form:"max_price"`
	MinArea   *float64 `json:"min_area,omitempty" form:"min_area"`
	MaxArea   *float64 `json:"max_area,omitempty" form:"max_area"`
	Amenities []string `json:"amenities,omitempty" form:"amenities"`
}

func (f *LocationFilter) Matches(loc *Location) bool {
	if f == nil {
		return true
	}
	if f.MinPrice != nil && loc.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && loc.Price > *f.MaxPrice {
		return false
	}
	if f.MinArea != nil && loc.Area < *f.MinArea {
		return false
	}
	if f.MaxArea != nil && loc.Area > *f.MaxArea {
		return false
	}
	for _, amenity := range f.Amenities {
		found := false
		for _, have := range loc.Amenities {
			if have == amenity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
