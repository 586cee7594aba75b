package services

import (
	"context"
	"time"

	"venuehub/internal/models"
	"venuehub/internal/repositories/interfaces"
	"venuehub/internal/utils"
	"venuehub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateShareRequest struct {
	AccessLevel models.AccessLevel `json:"access_level" binding:"required"`
	Name        string             `json:"name"`
	ExpiresAt   *time.Time         `json:"expires_at"`
}

// ShareService manages share links. Every operation is owner-only; shares
// are immutable after creation and only ever deleted.
type ShareService interface {
	CreateShare(ctx context.Context, locationID primitive.ObjectID, req *CreateShareRequest, userID primitive.ObjectID) (*models.LocationShare, error)
	ListShares(ctx context.Context, locationID primitive.ObjectID, userID primitive.ObjectID) ([]*models.LocationShare, error)
	DeleteShare(ctx context.Context, shareID, locationID primitive.ObjectID, userID primitive.ObjectID) error
}

type shareService struct {
	shareRepo    interfaces.ShareRepository
	locationRepo interfaces.LocationRepository
	notifier     ChangeNotifier
	logger       *logger.Logger
}

func NewShareService(
	shareRepo interfaces.ShareRepository,
	locationRepo interfaces.LocationRepository,
	notifier ChangeNotifier,
	logger *logger.Logger,
) ShareService {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &shareService{
		shareRepo:    shareRepo,
		locationRepo: locationRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *shareService) CreateShare(ctx context.Context, locationID primitive.ObjectID, req *CreateShareRequest, userID primitive.ObjectID) (*models.LocationShare, error) {
	if userID.IsZero() {
		return nil, models.ErrNotAuthenticated
	}
	if !req.AccessLevel.Valid() {
		return nil, models.ErrForbidden
	}

	if err := s.requireOwner(ctx, locationID, userID); err != nil {
		return nil, err
	}

	token, err := s.shareRepo.GenerateUniqueToken(ctx)
	if err != nil {
		// Token generator unavailable. A locally drawn token of the same
		// entropy is acceptable; the unique index still guards collisions.
		s.logger.WithError(err).Warn("Token generator unavailable, using local token")
		token = utils.GenerateShareToken()
	}

	share := &models.LocationShare{
		LocationID:  locationID,
		ShareToken:  token,
		AccessLevel: req.AccessLevel,
		Name:        req.Name,
		CreatedBy:   userID,
		ExpiresAt:   req.ExpiresAt,
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	s.notifier.Notify(ChangeEvent{Type: utils.EventShareCreated, LocationID: locationID})
	return share, nil
}

func (s *shareService) ListShares(ctx context.Context, locationID primitive.ObjectID, userID primitive.ObjectID) ([]*models.LocationShare, error) {
	if userID.IsZero() {
		return nil, models.ErrNotAuthenticated
	}

	if err := s.requireOwner(ctx, locationID, userID); err != nil {
		return nil, err
	}

	return s.shareRepo.ListByLocation(ctx, locationID)
}

func (s *shareService) DeleteShare(ctx context.Context, shareID, locationID primitive.ObjectID, userID primitive.ObjectID) error {
	if userID.IsZero() {
		return models.ErrNotAuthenticated
	}

	if err := s.requireOwner(ctx, locationID, userID); err != nil {
		return err
	}

	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return err
	}
	if share.LocationID != locationID {
		return models.ErrNotFound
	}

	if err := s.shareRepo.Delete(ctx, shareID); err != nil {
		return err
	}

	s.notifier.Notify(ChangeEvent{Type: utils.EventShareDeleted, LocationID: locationID})
	return nil
}

func (s *shareService) requireOwner(ctx context.Context, locationID primitive.ObjectID, userID primitive.ObjectID) error {
	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if !location.IsOwnedBy(userID) {
		return models.ErrForbidden
	}
	return nil
}
