package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/repository/mongodb"
)

type memUserStore struct {
	byEmail map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]models.User)}
}

func (m *memUserStore) Insert(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return models.User{}, mongodb.ErrUserNotFound
	}
	return u, nil
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store, "test-secret", time.Hour, nil)

	user, err := svc.Register(context.Background(), "Admin", "admin@estate.dev", "s3cret", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NotEqual(t, "s3cret", store.byEmail["admin@estate.dev"].Password, "password must be hashed")

	token, loggedIn, err := svc.Login(context.Background(), "admin@estate.dev", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@estate.dev", claims.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newMemUserStore(), "test-secret", time.Hour, nil)

	_, err := svc.Register(context.Background(), "A", "a@estate.dev", "pw", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "B", "a@estate.dev", "pw", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDemotesUnknownRole(t *testing.T) {
	svc := NewService(newMemUserStore(), "test-secret", time.Hour, nil)

	user, err := svc.Register(context.Background(), "A", "a@estate.dev", "pw", "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newMemUserStore(), "test-secret", time.Hour, nil)

	_, err := svc.Register(context.Background(), "A", "a@estate.dev", "right", "")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@estate.dev", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "missing@estate.dev", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store, "test-secret", time.Hour, nil)
	other := NewService(store, "other-secret", time.Hour, nil)

	_, err := svc.Register(context.Background(), "A", "a@estate.dev", "pw", "")
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "a@estate.dev", "pw")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store, "test-secret", -time.Minute, nil)

	_, err := svc.Register(context.Background(), "A", "a@estate.dev", "pw", "")
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "a@estate.dev", "pw")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
