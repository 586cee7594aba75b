package interfaces

import (
	"context"

	"venuehub/internal/models"
	"venuehub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Location, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// List returns locations matching the pushed-down filters, newest
	// created first unless the params override the sort. publishedOnly
	// narrows the query to published rows.
	List(ctx context.Context, filter *models.LocationFilter, publishedOnly bool, params *utils.PaginationParams) ([]*models.Location, int64, error)

	// Ownership and status
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Location, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.LocationStatus) (*models.Location, error)
}
