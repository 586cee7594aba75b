package services_test

import (
	"context"
	"testing"

	"venuehub/internal/models"
	"venuehub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ primitive.ObjectID) error {
	return nil
}

func newAuthFixture(t *testing.T) (services.AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	return services.NewAuthService(repo, "test-secret", newTestLogger(t)), repo
}

func registerRequest() *services.RegisterRequest {
	return &services.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	auth, repo := newAuthFixture(t)

	resp, err := auth.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Len(t, repo.users, 1)
	// The stored password must be a hash, never the plaintext.
	assert.NotEqual(t, "correct-horse", resp.User.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _ := newAuthFixture(t)
	_, err := auth.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), registerRequest())

	assert.Error(t, err)
}

func TestRegisterValidatesInput(t *testing.T) {
	auth, _ := newAuthFixture(t)

	_, err := auth.Register(context.Background(), &services.RegisterRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     "not-an-email",
		Password:  "short",
	})

	assert.Error(t, err)
}

func TestLoginWithWrongPassword(t *testing.T) {
	auth, _ := newAuthFixture(t)
	_, err := auth.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), &services.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-horse",
	})

	assert.Error(t, err)
}

func TestLoginSuspendedAccount(t *testing.T) {
	auth, repo := newAuthFixture(t)
	_, err := auth.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	for _, user := range repo.users {
		user.Status = models.UserStatusSuspended
	}

	_, err = auth.Login(context.Background(), &services.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	assert.Error(t, err)
}

func TestLoginAndValidateAccessToken(t *testing.T) {
	auth, _ := newAuthFixture(t)
	registered, err := auth.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := auth.Login(context.Background(), &services.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

// A refresh token must not pass as an access token, and vice versa.
func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	auth, _ := newAuthFixture(t)
	resp, err := auth.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = auth.ValidateToken(context.Background(), resp.RefreshToken)
	assert.Error(t, err)

	_, err = auth.RefreshToken(context.Background(), resp.AccessToken)
	assert.Error(t, err)
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	auth, _ := newAuthFixture(t)
	resp, err := auth.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	refreshed, err := auth.RefreshToken(context.Background(), resp.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
}

func TestValidateGarbageToken(t *testing.T) {
	auth, _ := newAuthFixture(t)

	_, err := auth.ValidateToken(context.Background(), "not.a.jwt")

	assert.Error(t, err)
}
