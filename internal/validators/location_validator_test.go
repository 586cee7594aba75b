package validators_test

import (
	"testing"
	"time"

	"venuehub/internal/utils"
	"venuehub/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() *validators.LocationCreateRequest {
	return &validators.LocationCreateRequest{
		Title:   "Daylight Studio",
		Address: "12 Harbor Lane",
		Price:   85,
		Status:  "draft",
	}
}

func TestValidateLocationCreateAccepts(t *testing.T) {
	assert.Empty(t, validators.ValidateLocationCreate(validCreate()))
}

func TestValidateLocationCreateRequiresTitleAndAddress(t *testing.T) {
	errs := validators.ValidateLocationCreate(&validators.LocationCreateRequest{})

	require.NotEmpty(t, errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "address")
}

func TestValidateLocationCreateRejectsUnknownStatus(t *testing.T) {
	req := validCreate()
	req.Status = "pending"

	assert.NotEmpty(t, validators.ValidateLocationCreate(req))
}

func TestValidateLocationCreateRejectsArchived(t *testing.T) {
	req := validCreate()
	req.Status = "archived"

	errs := validators.ValidateLocationCreate(req)

	require.Len(t, errs, 1)
	assert.Equal(t, "status", errs[0].Field)
}

func TestValidateShareCreate(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	assert.Empty(t, validators.ValidateShareCreate(&validators.ShareCreateRequest{
		AccessLevel: "photos_only",
		ExpiresAt:   &future,
	}))

	assert.NotEmpty(t, validators.ValidateShareCreate(&validators.ShareCreateRequest{
		AccessLevel: "superuser",
	}))

	assert.NotEmpty(t, validators.ValidateShareCreate(&validators.ShareCreateRequest{
		AccessLevel: "full_info",
		ExpiresAt:   &past,
	}))
}

func TestValidateImageCount(t *testing.T) {
	assert.Empty(t, validators.ValidateImageCount(utils.MaxImagesPerVenue))
	assert.NotEmpty(t, validators.ValidateImageCount(utils.MaxImagesPerVenue+1))
}
