package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"venuehub/internal/filter"
	"venuehub/internal/models"
	"venuehub/internal/repositories/interfaces"
	"venuehub/internal/utils"
	"venuehub/pkg/logger"
	"venuehub/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FallbackStore is the degraded-mode local record store consulted when the
// primary store is unreachable.
type FallbackStore interface {
	List() ([]*models.Location, error)
	Get(id primitive.ObjectID) (*models.Location, error)
	Append(location *models.Location) error
	Remove(id primitive.ObjectID) (bool, error)
}

type ListQuery struct {
	Search        string
	Filter        *models.LocationFilter
	SortBy        filter.SortKey
	Order         filter.SortOrder
	IncludeDrafts bool
	Pagination    *utils.PaginationParams
}

type CreateLocationRequest struct {
	Title               string                   `json:"title" binding:"required"`
	Description         string                   `json:"description"`
	Address             string                   `json:"address" binding:"required"`
	Price               float64                  `json:"price"`
	Area                float64                  `json:"area"`
	ImageURLs           []string                 `json:"image_urls"`
	Amenities           []string                 `json:"amenities"`
	Rules               []string                 `json:"rules"`
	Tags                []string                 `json:"tags"`
	Status              models.LocationStatus    `json:"status"`
	Coordinates         *models.Coordinates      `json:"coordinates"`
	Features            *models.LocationFeatures `json:"features"`
	Availability        *models.Availability     `json:"availability"`
	MinimumBookingHours int                      `json:"minimum_booking_hours"`
}

// UpdateLocationRequest carries a field-level merge: only non-nil fields are
// written, everything else keeps its prior value.
type UpdateLocationRequest struct {
	Title               *string                  `json:"title"`
	Description         *string                  `json:"description"`
	Address             *string                  `json:"address"`
	Price               *float64                 `json:"price"`
	Area                *float64                 `json:"area"`
	Images              *[]string                `json:"images"`
	Amenities           *[]string                `json:"amenities"`
	Rules               *[]string                `json:"rules"`
	Tags                *[]string                `json:"tags"`
	Coordinates         *models.Coordinates      `json:"coordinates"`
	Features            *models.LocationFeatures `json:"features"`
	Availability        *models.Availability     `json:"availability"`
	MinimumBookingHours *int                     `json:"minimum_booking_hours"`
}

type Marker struct {
	ID          primitive.ObjectID  `json:"id"`
	Title       string              `json:"title"`
	Coordinates *models.Coordinates `json:"coordinates"`
	Images      []string            `json:"images"`
}

type LocationService interface {
	List(ctx context.Context, query ListQuery, userID primitive.ObjectID) ([]*models.Location, int64, error)
	Get(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, shareToken string) (*models.Location, error)
	Create(ctx context.Context, req *CreateLocationRequest, userID primitive.ObjectID, images []*multipart.FileHeader) (*models.Location, error)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateLocationRequest, userID primitive.ObjectID, shareToken string, images []*multipart.FileHeader) (*models.Location, error)
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.LocationStatus, userID primitive.ObjectID) (*models.Location, error)
	Markers(ctx context.Context) ([]*Marker, error)
}

type locationService struct {
	locationRepo interfaces.LocationRepository
	shareRepo    interfaces.ShareRepository
	imageService ImageService
	mapsProvider maps.MapsProvider
	fallback     FallbackStore
	seed         []*models.Location
	demoIDs      map[primitive.ObjectID]bool
	notifier     ChangeNotifier
	logger       *logger.Logger
}

func NewLocationService(
	locationRepo interfaces.LocationRepository,
	shareRepo interfaces.ShareRepository,
	imageService ImageService,
	mapsProvider maps.MapsProvider,
	fallback FallbackStore,
	seed []*models.Location,
	notifier ChangeNotifier,
	logger *logger.Logger,
) LocationService {
	demoIDs := make(map[primitive.ObjectID]bool, len(seed))
	for _, loc := range seed {
		demoIDs[loc.ID] = true
	}

	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &locationService{
		locationRepo: locationRepo,
		shareRepo:    shareRepo,
		imageService: imageService,
		mapsProvider: mapsProvider,
		fallback:     fallback,
		seed:         seed,
		demoIDs:      demoIDs,
		notifier:     notifier,
		logger:       logger,
	}
}

// readSource is one step of the ordered degraded-read chain. A miss moves on
// to the next source; only the chain running dry surfaces an error.
type readSource struct {
	name string
	list func(ctx context.Context) ([]*models.Location, error)
	get  func(ctx context.Context, id primitive.ObjectID) (*models.Location, bool)
}

func (s *locationService) fallbackSources() []readSource {
	return []readSource{
		{
			name: "seed",
			list: func(context.Context) ([]*models.Location, error) {
				return s.seed, nil
			},
			get: func(_ context.Context, id primitive.ObjectID) (*models.Location, bool) {
				for _, loc := range s.seed {
					if loc.ID == id {
						return loc, true
					}
				}
				return nil, false
			},
		},
		{
			name: "localstore",
			list: func(context.Context) ([]*models.Location, error) {
				return s.fallback.List()
			},
			get: func(_ context.Context, id primitive.ObjectID) (*models.Location, bool) {
				loc, err := s.fallback.Get(id)
				if err != nil {
					return nil, false
				}
				return loc, true
			},
		},
	}
}

func (s *locationService) List(ctx context.Context, query ListQuery, userID primitive.ObjectID) ([]*models.Location, int64, error) {
	includeDrafts := query.IncludeDrafts && !userID.IsZero()

	locations, _, err := s.locationRepo.List(ctx, query.Filter, !includeDrafts, query.Pagination)
	if err != nil {
		if !errors.Is(err, models.ErrUpstreamUnavailable) {
			return nil, 0, err
		}

		s.logger.WithError(err).Warn("Primary store unavailable, serving listing catalog from fallbacks")
		locations = s.collectFallback(ctx)
	}

	if includeDrafts {
		locations = visibleTo(locations, userID)
	} else {
		locations = publishedOnly(locations)
	}

	locations = filter.Apply(locations, filter.Query{
		Search: query.Search,
		Filter: query.Filter,
		SortBy: query.SortBy,
		Order:  query.Order,
	})

	return locations, int64(len(locations)), nil
}

func (s *locationService) collectFallback(ctx context.Context) []*models.Location {
	var all []*models.Location
	for _, source := range s.fallbackSources() {
		locations, err := source.list(ctx)
		if err != nil {
			s.logger.WithError(err).
				WithField("source", source.name).
				Warn("Fallback source read failed")
			continue
		}
		all = append(all, locations...)
	}
	return all
}

func (s *locationService) Get(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, shareToken string) (*models.Location, error) {
	now := time.Now()

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrUpstreamUnavailable) {
			return nil, err
		}

		// Degraded read. The share lookup needs the primary store, so the
		// fallback path resolves access without a token.
		for _, source := range s.fallbackSources() {
			if loc, ok := source.get(ctx, id); ok {
				level := ResolveAccess(loc, userID, nil, now)
				if level == models.AccessLevelNone {
					return nil, models.ErrNotFound
				}
				loc.AccessLevel = level
				return loc, nil
			}
		}
		return nil, err
	}

	var share *models.LocationShare
	if shareToken != "" {
		// Lookup failure is treated as no valid share, never as access.
		share, err = s.shareRepo.GetByToken(ctx, id, shareToken)
		if err != nil {
			share = nil
		}
	}

	level := ResolveAccess(location, userID, share, now)
	if level == models.AccessLevelNone {
		if share != nil && share.Expired(now) {
			return nil, models.ErrShareExpired
		}
		return nil, models.ErrNotFound
	}

	location.AccessLevel = level
	return location, nil
}

func (s *locationService) Create(ctx context.Context, req *CreateLocationRequest, userID primitive.ObjectID, images []*multipart.FileHeader) (*models.Location, error) {
	if userID.IsZero() {
		return nil, models.ErrNotAuthenticated
	}

	folder := utils.GenerateImageFolder()

	finalImages := s.imageService.UploadImages(ctx, images, folder)
	if len(images) > 0 && len(finalImages) == 0 {
		s.logger.WithField("submitted", len(images)).
			Warn("No images survived upload, creating listing without images")
	}
	finalImages = append(finalImages, retainRemoteURLs(req.ImageURLs)...)

	status := req.Status
	if status == "" {
		status = models.LocationStatusDraft
	}

	location := &models.Location{
		OwnerID:             userID,
		Title:               req.Title,
		Description:         req.Description,
		Address:             req.Address,
		Price:               req.Price,
		Area:                req.Area,
		Images:              finalImages,
		Amenities:           orEmpty(req.Amenities),
		Rules:               orEmpty(req.Rules),
		Tags:                req.Tags,
		Status:              status,
		Coordinates:         req.Coordinates,
		Features:            req.Features,
		Availability:        req.Availability,
		Bookings:            models.BookingStats{},
		MinimumBookingHours: req.MinimumBookingHours,
	}

	if location.Coordinates == nil {
		location.Coordinates = &models.Coordinates{
			Latitude:  utils.DefaultLatitude,
			Longitude: utils.DefaultLongitude,
		}
	}
	if location.Features == nil {
		location.Features = &models.LocationFeatures{MaxCapacity: 1}
	}
	if location.MinimumBookingHours == 0 {
		location.MinimumBookingHours = utils.DefaultMinimumBookingHours
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		// The record never landed, so the uploaded objects are orphans.
		s.imageService.DeleteImages(ctx, finalImages)
		return nil, err
	}

	s.notifier.Notify(ChangeEvent{Type: utils.EventLocationCreated, LocationID: location.ID})
	return location, nil
}

func (s *locationService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateLocationRequest, userID primitive.ObjectID, shareToken string, images []*multipart.FileHeader) (*models.Location, error) {
	if s.demoIDs[id] {
		return nil, models.ErrDemoImmutable
	}

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeEdit(ctx, location, userID, shareToken); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "title", req.Title)
	setIfPresent(updates, "description", req.Description)
	setIfPresent(updates, "address", req.Address)
	setIfPresent(updates, "price", req.Price)
	setIfPresent(updates, "area", req.Area)
	setIfPresent(updates, "amenities", req.Amenities)
	setIfPresent(updates, "rules", req.Rules)
	setIfPresent(updates, "tags", req.Tags)
	setIfPresent(updates, "minimum_booking_hours", req.MinimumBookingHours)
	if req.Coordinates != nil {
		updates["coordinates"] = req.Coordinates
	}
	if req.Features != nil {
		updates["features"] = req.Features
	}
	if req.Availability != nil {
		updates["availability"] = req.Availability
	}

	// New uploads are merged with the retained set. Images dropped from the
	// retained set are not deleted here.
	retained := location.Images
	if req.Images != nil {
		retained = *req.Images
	}
	if len(images) > 0 {
		uploaded := s.imageService.UploadImages(ctx, images, utils.GenerateImageFolder())
		updates["images"] = append(retained, uploaded...)
	} else if req.Images != nil {
		updates["images"] = retained
	}

	updated, err := s.locationRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ChangeEvent{Type: utils.EventLocationUpdated, LocationID: id})
	return updated, nil
}

func (s *locationService) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	if userID.IsZero() {
		return models.ErrNotAuthenticated
	}
	if s.demoIDs[id] {
		return models.ErrDemoImmutable
	}

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrUpstreamUnavailable) {
			return s.deleteFromFallback(id, userID)
		}
		return err
	}

	if !location.IsOwnedBy(userID) {
		return models.ErrForbidden
	}

	s.imageService.DeleteImages(ctx, location.Images)

	if err := s.shareRepo.DeleteByLocation(ctx, id); err != nil {
		s.logger.WithError(err).WithLocationID(id).Warn("Failed to delete shares with listing")
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Notify(ChangeEvent{Type: utils.EventLocationDeleted, LocationID: id})
	return nil
}

// deleteFromFallback removes a record that never reached the primary store.
func (s *locationService) deleteFromFallback(id primitive.ObjectID, userID primitive.ObjectID) error {
	location, err := s.fallback.Get(id)
	if err != nil {
		return models.ErrNotFound
	}
	if !location.IsOwnedBy(userID) {
		return models.ErrForbidden
	}

	removed, err := s.fallback.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return models.ErrNotFound
	}

	s.notifier.Notify(ChangeEvent{Type: utils.EventLocationDeleted, LocationID: id})
	return nil
}

func (s *locationService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.LocationStatus, userID primitive.ObjectID) (*models.Location, error) {
	if userID.IsZero() {
		return nil, models.ErrNotAuthenticated
	}
	if s.demoIDs[id] {
		return nil, models.ErrDemoImmutable
	}

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !location.IsOwnedBy(userID) {
		return nil, models.ErrForbidden
	}

	updated, err := s.locationRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ChangeEvent{
		Type:       utils.EventLocationStatus,
		LocationID: id,
		Data:       map[string]interface{}{"status": string(status)},
	})
	return updated, nil
}

// Markers returns the published catalog reduced to what a map needs. Records
// without stored coordinates are geocoded from their address best-effort.
func (s *locationService) Markers(ctx context.Context) ([]*Marker, error) {
	locations, _, err := s.List(ctx, ListQuery{}, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	markers := make([]*Marker, 0, len(locations))
	for _, loc := range locations {
		coords := loc.Coordinates
		if coords == nil && s.mapsProvider != nil && loc.Address != "" {
			coords = s.geocodeAddress(ctx, loc.Address)
		}
		if coords == nil {
			coords = &models.Coordinates{
				Latitude:  utils.DefaultLatitude,
				Longitude: utils.DefaultLongitude,
			}
		}

		markers = append(markers, &Marker{
			ID:          loc.ID,
			Title:       loc.Title,
			Coordinates: coords,
			Images:      loc.Images,
		})
	}

	return markers, nil
}

func (s *locationService) geocodeAddress(ctx context.Context, address string) *models.Coordinates {
	resp, err := s.mapsProvider.Geocode(ctx, address)
	if err != nil {
		s.logger.WithError(err).WithField("address", address).Debug("Geocoding failed")
		return nil
	}

	best := resp.Best()
	if best == nil {
		return nil
	}

	return &models.Coordinates{
		Latitude:  best.Coordinates.Latitude,
		Longitude: best.Coordinates.Longitude,
	}
}

// authorizeEdit grants edit to the owner or to a non-expired share of
// sufficient level. An expired token is reported as such, not as not-found.
func (s *locationService) authorizeEdit(ctx context.Context, location *models.Location, userID primitive.ObjectID, shareToken string) error {
	if location.IsOwnedBy(userID) {
		return nil
	}

	if shareToken != "" {
		share, err := s.shareRepo.GetByToken(ctx, location.ID, shareToken)
		if err != nil {
			return models.ErrForbidden
		}
		if share.Expired(time.Now()) {
			return models.ErrShareExpired
		}
		if share.AccessLevel.CanEdit() {
			return nil
		}
		return models.ErrForbidden
	}

	if userID.IsZero() {
		return models.ErrNotAuthenticated
	}
	return models.ErrForbidden
}

func publishedOnly(locations []*models.Location) []*models.Location {
	result := make([]*models.Location, 0, len(locations))
	for _, loc := range locations {
		if loc.IsPublished() {
			result = append(result, loc)
		}
	}
	return result
}

// visibleTo keeps published listings plus the caller's own drafts.
func visibleTo(locations []*models.Location, userID primitive.ObjectID) []*models.Location {
	result := make([]*models.Location, 0, len(locations))
	for _, loc := range locations {
		if loc.IsPublished() || loc.IsOwnedBy(userID) {
			result = append(result, loc)
		}
	}
	return result
}

func retainRemoteURLs(urls []string) []string {
	var kept []string
	for _, u := range urls {
		if strings.HasPrefix(u, "http") {
			kept = append(kept, u)
		}
	}
	return kept
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func setIfPresent[T any](updates map[string]interface{}, field string, value *T) {
	if value != nil {
		updates[field] = *value
	}
}
