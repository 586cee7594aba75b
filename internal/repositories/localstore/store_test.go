package localstore_test

import (
	"path/filepath"
	"testing"
	"time"

	"venuehub/internal/models"
	"venuehub/internal/repositories/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.NewStore(filepath.Join(t.TempDir(), "fallback", "locations.json"))
	require.NoError(t, err)
	return store
}

func sample(title string) *models.Location {
	return &models.Location{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Address:   "1 Local Road",
		Status:    models.LocationStatusDraft,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestStoreEmptyListsNothing(t *testing.T) {
	store := newStore(t)

	locations, err := store.List()

	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestStoreAppendAndGet(t *testing.T) {
	store := newStore(t)
	loc := sample("kept locally")

	require.NoError(t, store.Append(loc))

	got, err := store.Get(loc.ID)
	require.NoError(t, err)
	assert.Equal(t, loc.Title, got.Title)
	assert.Equal(t, loc.ID, got.ID)
}

func TestStoreGetMissing(t *testing.T) {
	store := newStore(t)

	_, err := store.Get(primitive.NewObjectID())

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStoreAppendReplacesExistingID(t *testing.T) {
	store := newStore(t)
	loc := sample("v1")
	require.NoError(t, store.Append(loc))

	updated := *loc
	updated.Title = "v2"
	require.NoError(t, store.Append(&updated))

	locations, err := store.List()
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "v2", locations[0].Title)
}

func TestStoreRemove(t *testing.T) {
	store := newStore(t)
	loc := sample("doomed")
	require.NoError(t, store.Append(loc))

	removed, err := store.Remove(loc.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(loc.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	first, err := localstore.NewStore(path)
	require.NoError(t, err)
	loc := sample("durable")
	require.NoError(t, first.Append(loc))

	second, err := localstore.NewStore(path)
	require.NoError(t, err)

	got, err := second.Get(loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Title)
}

func TestLoadSeedReturnsFreshCopies(t *testing.T) {
	first, err := localstore.LoadSeed("")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	first[0].Title = "scribbled on"

	second, err := localstore.LoadSeed("")
	require.NoError(t, err)
	assert.NotEqual(t, "scribbled on", second[0].Title)
}

func TestLoadSeedUnreadableFile(t *testing.T) {
	_, err := localstore.LoadSeed(filepath.Join(t.TempDir(), "missing.json"))

	assert.Error(t, err)
}
