package interfaces

import (
	"context"

	"venuehub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShareRepository interface {
	Create(ctx context.Context, share *models.LocationShare) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.LocationShare, error)

	// GetByToken looks up the share row for this location id and token.
	// Expiry is NOT checked here; access resolution owns that decision.
	GetByToken(ctx context.Context, locationID primitive.ObjectID, token string) (*models.LocationShare, error)

	ListByLocation(ctx context.Context, locationID primitive.ObjectID) ([]*models.LocationShare, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByLocation(ctx context.Context, locationID primitive.ObjectID) error

	// GenerateUniqueToken produces a fresh token guaranteed unused in the
	// store. The server-side uniqueness check stands in for the backend's
	// token RPC; callers fall back to a locally generated token when it
	// fails.
	GenerateUniqueToken(ctx context.Context) (string, error)
}
