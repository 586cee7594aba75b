package services_test

import (
	"context"
	"testing"
	"time"

	"venuehub/internal/models"
	"venuehub/internal/services"
	"venuehub/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type shareFixture struct {
	*locationFixture
	shares services.ShareService
}

func newShareFixture(t *testing.T) *shareFixture {
	t.Helper()

	f := newLocationFixture(t, nil)
	return &shareFixture{
		locationFixture: f,
		shares:          services.NewShareService(f.shareRepo, f.repo, f.notifier, newTestLogger(t)),
	}
}

func TestCreateShareRequiresAuth(t *testing.T) {
	f := newShareFixture(t)

	_, err := f.shares.CreateShare(context.Background(), primitive.NewObjectID(), &services.CreateShareRequest{
		AccessLevel: models.AccessLevelFullInfo,
	}, primitive.NilObjectID)

	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestCreateShareOwnerOnly(t *testing.T) {
	f := newShareFixture(t)
	loc := f.addLocation(&models.Location{Title: "x", OwnerID: primitive.NewObjectID(), Status: models.LocationStatusPublished})

	_, err := f.shares.CreateShare(context.Background(), loc.ID, &services.CreateShareRequest{
		AccessLevel: models.AccessLevelFullInfo,
	}, primitive.NewObjectID())

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestCreateShareRejectsUnknownLevel(t *testing.T) {
	f := newShareFixture(t)
	owner := primitive.NewObjectID()
	loc := f.addLocation(&models.Location{Title: "x", OwnerID: owner, Status: models.LocationStatusPublished})

	_, err := f.shares.CreateShare(context.Background(), loc.ID, &services.CreateShareRequest{
		AccessLevel: models.AccessLevel("root"),
	}, owner)

	assert.ErrorIs(t, err, models.ErrForbidden)
}

// A freshly created share token must immediately open the listing at the
// requested level.
func TestCreateShareRoundTrip(t *testing.T) {
	f := newShareFixture(t)
	owner := primitive.NewObjectID()
	loc := f.addLocation(&models.Location{Title: "draft", OwnerID: owner, Status: models.LocationStatusDraft})

	share, err := f.shares.CreateShare(context.Background(), loc.ID, &services.CreateShareRequest{
		AccessLevel: models.AccessLevelPhotosOnly,
		Name:        "for the client",
	}, owner)
	require.NoError(t, err)
	require.NotEmpty(t, share.ShareToken)
	assert.Equal(t, owner, share.CreatedBy)

	got, err := f.service.Get(context.Background(), loc.ID, primitive.NilObjectID, share.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, models.AccessLevelPhotosOnly, got.AccessLevel)
}

func TestCreateShareFallsBackToLocalToken(t *testing.T) {
	f := newShareFixture(t)
	f.shareRepo.tokenErr = true
	owner := primitive.NewObjectID()
	loc := f.addLocation(&models.Location{Title: "x", OwnerID: owner, Status: models.LocationStatusPublished})

	share, err := f.shares.CreateShare(context.Background(), loc.ID, &services.CreateShareRequest{
		AccessLevel: models.AccessLevelAdmin,
	}, owner)

	require.NoError(t, err)
	assert.NotEmpty(t, share.ShareToken)
}

func TestCreateShareWithExpiry(t *testing.T) {
	f := newShareFixture(t)
	owner := primitive.NewObjectID()
	loc := f.addLocation(&models.Location{Title: "x", OwnerID: owner, Status: models.LocationStatusPublished})

	expiresAt := time.Now().Add(time.Hour)
	share, err := f.shares.CreateShare(context.Background(), loc.ID, &services.CreateShareRequest{
		AccessLevel: models.AccessLevelFullInfo,
		ExpiresAt:   &expiresAt,
	}, owner)

	require.NoError(t, err)
	require.NotNil(t, share.ExpiresAt)
	assert.False(t, share.Expired(time.Now()))
	assert.True(t, share.Expired(expiresAt.Add(time.Second)))
}

func TestListSharesOwnerOnly(t *testing.T) {
	f := newShareFixture(t)
	owner := primitive.NewObjectID()
	loc := f.addLocation(&models.Location{Title: "x", OwnerID: owner, Status: models.LocationStatusPublished})
	f.addShare(&models.LocationShare{LocationID: loc.ID, ShareToken: "a", AccessLevel: models.AccessLevelFullInfo})
	f.addShare(&models.LocationShare{LocationID: primitive.NewObjectID(), ShareToken: "b", AccessLevel: models.AccessLevelFullInfo})

	_, err := f.shares.ListShares(context.Background(), loc.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrForbidden)

	shares, err := f.shares.ListShares(context.Background(), loc.ID, owner)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "a", shares[0].ShareToken)
}

func TestDeleteShareRevokesAccess(t *testing.T) {
	f := newShareFixture(t)
	owner := primitive.NewObjectID()
	loc := f.addLocation(&models.Location{Title: "draft", OwnerID: owner, Status: models.LocationStatusDraft})
	share := f.addShare(&models.LocationShare{LocationID: loc.ID, ShareToken: "tok", AccessLevel: models.AccessLevelFullInfo})

	require.NoError(t, f.shares.DeleteShare(context.Background(), share.ID, loc.ID, owner))

	_, err := f.service.Get(context.Background(), loc.ID, primitive.NilObjectID, "tok")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, f.notifier.types(), utils.EventShareDeleted)
}

func TestDeleteShareWrongLocation(t *testing.T) {
	f := newShareFixture(t)
	owner := primitive.NewObjectID()
	locA := f.addLocation(&models.Location{Title: "a", OwnerID: owner, Status: models.LocationStatusPublished})
	locB := f.addLocation(&models.Location{Title: "b", OwnerID: owner, Status: models.LocationStatusPublished})
	share := f.addShare(&models.LocationShare{LocationID: locA.ID, ShareToken: "tok", AccessLevel: models.AccessLevelFullInfo})

	err := f.shares.DeleteShare(context.Background(), share.ID, locB.ID, owner)

	assert.ErrorIs(t, err, models.ErrNotFound)
}
