package services_test

import (
	"testing"
	"time"

	"venuehub/internal/models"
	"venuehub/internal/services"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveAccess(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	published := &models.Location{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Status:  models.LocationStatusPublished,
	}
	draft := &models.Location{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Status:  models.LocationStatusDraft,
	}

	validUntil := now.Add(time.Hour)
	expiredAt := now.Add(-time.Hour)

	share := func(loc *models.Location, level models.AccessLevel, expiresAt *time.Time) *models.LocationShare {
		return &models.LocationShare{
			ID:          primitive.NewObjectID(),
			LocationID:  loc.ID,
			ShareToken:  "tok",
			AccessLevel: level,
			ExpiresAt:   expiresAt,
		}
	}

	tests := []struct {
		name     string
		location *models.Location
		userID   primitive.ObjectID
		share    *models.LocationShare
		want     models.AccessLevel
	}{
		{
			name:     "nil location resolves to none",
			location: nil,
			userID:   owner,
			want:     models.AccessLevelNone,
		},
		{
			name:     "owner gets admin even on drafts",
			location: draft,
			userID:   owner,
			want:     models.AccessLevelAdmin,
		},
		{
			name:     "owner outranks a weaker share",
			location: draft,
			userID:   owner,
			share:    share(draft, models.AccessLevelPhotosOnly, &validUntil),
			want:     models.AccessLevelAdmin,
		},
		{
			name:     "published listing grants full info to anonymous callers",
			location: published,
			userID:   primitive.NilObjectID,
			want:     models.AccessLevelFullInfo,
		},
		{
			name:     "published listing grants full info to strangers",
			location: published,
			userID:   stranger,
			want:     models.AccessLevelFullInfo,
		},
		{
			name:     "draft is invisible without owner or share",
			location: draft,
			userID:   stranger,
			want:     models.AccessLevelNone,
		},
		{
			name:     "valid share grants its own level on a draft",
			location: draft,
			userID:   stranger,
			share:    share(draft, models.AccessLevelPhotosOnly, &validUntil),
			want:     models.AccessLevelPhotosOnly,
		},
		{
			name:     "share without expiry never expires",
			location: draft,
			userID:   primitive.NilObjectID,
			share:    share(draft, models.AccessLevelAdmin, nil),
			want:     models.AccessLevelAdmin,
		},
		{
			name:     "expired share grants nothing on a draft",
			location: draft,
			userID:   stranger,
			share:    share(draft, models.AccessLevelAdmin, &expiredAt),
			want:     models.AccessLevelNone,
		},
		{
			name:     "expired share falls through to published access",
			location: published,
			userID:   stranger,
			share:    share(published, models.AccessLevelAdmin, &expiredAt),
			want:     models.AccessLevelFullInfo,
		},
		{
			name:     "share for a different listing grants nothing",
			location: draft,
			userID:   stranger,
			share:    share(published, models.AccessLevelAdmin, &validUntil),
			want:     models.AccessLevelNone,
		},
		{
			name:     "share with an unknown level grants nothing",
			location: draft,
			userID:   stranger,
			share:    share(draft, models.AccessLevel("superuser"), &validUntil),
			want:     models.AccessLevelNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ResolveAccess(tt.location, tt.userID, tt.share, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessLevelCanEdit(t *testing.T) {
	assert.True(t, models.AccessLevelAdmin.CanEdit())
	assert.True(t, models.AccessLevelFullInfo.CanEdit())
	assert.False(t, models.AccessLevelPhotosOnly.CanEdit())
	assert.False(t, models.AccessLevelNone.CanEdit())
}
