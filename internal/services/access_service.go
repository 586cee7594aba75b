package services

import (
	"time"

	"venuehub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveAccess computes the effective access level for a listing from
// already-fetched inputs. It is recomputed on every request and never stored.
//
// Precedence: owner gets admin; a valid non-expired share grants its own
// level; a published listing grants full info to anyone; everything else
// resolves to no access. An expired share falls through rather than granting
// a level, so a draft behind a dead link goes dark instead of leaking.
func ResolveAccess(location *models.Location, userID primitive.ObjectID, share *models.LocationShare, now time.Time) models.AccessLevel {
	if location == nil {
		return models.AccessLevelNone
	}

	if !userID.IsZero() && location.IsOwnedBy(userID) {
		return models.AccessLevelAdmin
	}

	if share != nil && share.LocationID == location.ID && !share.Expired(now) && share.AccessLevel.Valid() {
		return share.AccessLevel
	}

	if location.IsPublished() {
		return models.AccessLevelFullInfo
	}

	return models.AccessLevelNone
}
