package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessLevel orders how much location detail and editing capability a
// caller sees. Ordered: photos_only < full_info < admin.
type AccessLevel string

const (
	AccessLevelNone       AccessLevel = ""
	AccessLevelPhotosOnly AccessLevel = "photos_only"
	AccessLevelFullInfo   AccessLevel = "full_info"
	AccessLevelAdmin      AccessLevel = "admin"
)

func (a AccessLevel) Valid() bool {
	switch a {
	case AccessLevelPhotosOnly, AccessLevelFullInfo, AccessLevelAdmin:
		return true
	}
	return false
}

func (a AccessLevel) CanEdit() bool {
	return a == AccessLevelAdmin || a == AccessLevelFullInfo
}

// LocationShare grants time-limited, level-scoped access to one location
// through an opaque token. Shares are immutable after creation; they are
// only ever deleted.
type LocationShare struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LocationID  primitive.ObjectID `json:"location_id" bson:"location_id" validate:"required"`
	ShareToken  string             `json:"share_token" bson:"share_token" validate:"required"`
	AccessLevel AccessLevel        `json:"access_level" bson:"access_level" validate:"required"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	CreatedBy   primitive.ObjectID `json:"created_by" bson:"created_by"`
	ExpiresAt   *time.Time         `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// Expired reports whether the share is past its expiry. A share without an
// expiry never expires.
func (s *LocationShare) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
