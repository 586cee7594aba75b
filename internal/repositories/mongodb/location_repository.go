package mongodb

import (
	"context"
	"fmt"
	"time"

	"venuehub/internal/models"
	"venuehub/internal/repositories/interfaces"
	"venuehub/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type locationRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewLocationRepository(db *mongo.Database, cache CacheService) interfaces.LocationRepository {
	return &locationRepository{
		collection: db.Collection("locations"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = location.CreatedAt

	_, err := r.collection.InsertOne(ctx, location)
	if err != nil {
		return fmt.Errorf("%w: failed to create location: %v", models.ErrUpstreamUnavailable, err)
	}

	r.invalidateLists(ctx)
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	cacheKey := utils.CacheLocationPrefix + id.Hex()
	if r.cache != nil {
		var cached models.Location
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var location models.Location
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get location: %v", models.ErrUpstreamUnavailable, err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, &location, utils.LocationCacheTTL)
	}

	return &location, nil
}

func (r *locationRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Location, error) {
	updates["updated_at"] = time.Now()

	var updated models.Location
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to update location: %v", models.ErrUpstreamUnavailable, err)
	}

	r.invalidate(ctx, id)
	return &updated, nil
}

func (r *locationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: failed to delete location: %v", models.ErrUpstreamUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// List pushes numeric range filters and the published-only restriction down
// to the query. Amenity intersection stays client-side; it only matters on
// the fallback path and keeping it out of the query keeps both paths
// identical in behavior.
func (r *locationRepository) List(ctx context.Context, filter *models.LocationFilter, publishedOnly bool, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	query := bson.M{}

	if filter != nil {
		if priceRange := rangeQuery(filter.MinPrice, filter.MaxPrice); priceRange != nil {
			query["price"] = priceRange
		}
		if areaRange := rangeQuery(filter.MinArea, filter.MaxArea); areaRange != nil {
			query["area"] = areaRange
		}
	}

	if publishedOnly {
		query["status"] = models.LocationStatusPublished
	}

	return r.findLocations(ctx, query, params)
}

func (r *locationRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	return r.findLocations(ctx, bson.M{"owner_id": ownerID}, params)
}

func (r *locationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.LocationStatus) (*models.Location, error) {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *locationRepository) findLocations(ctx context.Context, query bson.M, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to count locations: %v", models.ErrUpstreamUnavailable, err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if params != nil {
		opts = params.GetSortOptions()
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to find locations: %v", models.ErrUpstreamUnavailable, err)
	}
	defer cursor.Close(ctx)

	var locations []*models.Location
	for cursor.Next(ctx) {
		var location models.Location
		if err := cursor.Decode(&location); err != nil {
			return nil, 0, fmt.Errorf("%w: failed to decode location: %v", models.ErrUpstreamUnavailable, err)
		}
		locations = append(locations, &location)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: cursor error: %v", models.ErrUpstreamUnavailable, err)
	}

	return locations, total, nil
}

func (r *locationRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheLocationPrefix+id.Hex())
	r.invalidateLists(ctx)
}

func (r *locationRepository) invalidateLists(ctx context.Context) {
	if r.cache == nil {
		return
	}
	r.cache.DeletePattern(ctx, utils.CacheLocationListPrefix+"*")
}

func rangeQuery(min, max *float64) bson.M {
	if min == nil && max == nil {
		return nil
	}
	q := bson.M{}
	if min != nil {
		q["$gte"] = *min
	}
	if max != nil {
		q["$lte"] = *max
	}
	return q
}
