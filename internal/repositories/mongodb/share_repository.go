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

const tokenGenerationAttempts = 5

// Share rows bypass the cache entirely; expiry must always be evaluated
// against the live row.
type shareRepository struct {
	collection *mongo.Collection
}

func NewShareRepository(db *mongo.Database) interfaces.ShareRepository {
	return &shareRepository{
		collection: db.Collection("location_shares"),
	}
}

func (r *shareRepository) Create(ctx context.Context, share *models.LocationShare) error {
	share.ID = primitive.NewObjectID()
	share.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, share)
	if err != nil {
		return fmt.Errorf("%w: failed to create location share: %v", models.ErrUpstreamUnavailable, err)
	}

	return nil
}

func (r *shareRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.LocationShare, error) {
	var share models.LocationShare
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&share)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get location share: %v", models.ErrUpstreamUnavailable, err)
	}

	return &share, nil
}

func (r *shareRepository) GetByToken(ctx context.Context, locationID primitive.ObjectID, token string) (*models.LocationShare, error) {
	var share models.LocationShare
	err := r.collection.FindOne(ctx, bson.M{
		"location_id": locationID,
		"share_token": token,
	}).Decode(&share)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to look up share token: %v", models.ErrUpstreamUnavailable, err)
	}

	return &share, nil
}

func (r *shareRepository) ListByLocation(ctx context.Context, locationID primitive.ObjectID) ([]*models.LocationShare, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"location_id": locationID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list location shares: %v", models.ErrUpstreamUnavailable, err)
	}
	defer cursor.Close(ctx)

	var shares []*models.LocationShare
	for cursor.Next(ctx) {
		var share models.LocationShare
		if err := cursor.Decode(&share); err != nil {
			return nil, fmt.Errorf("%w: failed to decode location share: %v", models.ErrUpstreamUnavailable, err)
		}
		shares = append(shares, &share)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", models.ErrUpstreamUnavailable, err)
	}

	return shares, nil
}

func (r *shareRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: failed to delete location share: %v", models.ErrUpstreamUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *shareRepository) DeleteByLocation(ctx context.Context, locationID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"location_id": locationID})
	if err != nil {
		return fmt.Errorf("%w: failed to delete location shares: %v", models.ErrUpstreamUnavailable, err)
	}

	return nil
}

// GenerateUniqueToken draws random tokens until one is unused. The unique
// index on share_token still guards the race between check and insert.
func (r *shareRepository) GenerateUniqueToken(ctx context.Context) (string, error) {
	for attempt := 0; attempt < tokenGenerationAttempts; attempt++ {
		token := utils.GenerateShareToken()

		count, err := r.collection.CountDocuments(ctx, bson.M{"share_token": token})
		if err != nil {
			return "", fmt.Errorf("%w: failed to check token uniqueness: %v", models.ErrUpstreamUnavailable, err)
		}
		if count == 0 {
			return token, nil
		}
	}

	return "", fmt.Errorf("%w: could not generate a unique share token", models.ErrUpstreamUnavailable)
}
