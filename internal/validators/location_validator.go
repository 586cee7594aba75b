package validators

import (
	"time"

	"venuehub/internal/utils"
)

type LocationCreateRequest struct {
	Title               string   `json:"title" validate:"required,min=3,max=120"`
	Description         string   `json:"description" validate:"omitempty,max=5000"`
	Address             string   `json:"address" validate:"required,min=5,max=255"`
	Price               float64  `json:"price" validate:"omitempty,min=0"`
	Area                float64  `json:"area" validate:"omitempty,min=0"`
	Amenities           []string `json:"amenities" validate:"omitempty,max=50,dive,min=1,max=60"`
	Rules               []string `json:"rules" validate:"omitempty,max=50,dive,min=1,max=255"`
	Status              string   `json:"status" validate:"omitempty,location_status"`
	MinimumBookingHours int      `json:"minimum_booking_hours" validate:"omitempty,min=1,max=168"`
}

type ShareCreateRequest struct {
	AccessLevel string     `json:"access_level" validate:"required,access_level"`
	Name        string     `json:"name" validate:"omitempty,max=120"`
	ExpiresAt   *time.Time `json:"expires_at" validate:"omitempty,future_date"`
}

func ValidateLocationCreate(req *LocationCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// Archived is terminal; listings never start there.
	if req.Status == "archived" {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "New listings cannot be created as archived",
		})
	}

	return errors
}

func ValidateShareCreate(req *ShareCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

// ValidateImageCount caps the gallery size for a single listing.
func ValidateImageCount(count int) ValidationErrors {
	if count > utils.MaxImagesPerVenue {
		return ValidationErrors{{
			Field:   "images",
			Message: "Too many images for one listing",
		}}
	}
	return nil
}
