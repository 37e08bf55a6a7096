package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthAPI) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthAPI) Me(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, s *Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStore) Load(ctx context.Context, id string) (*Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoginSuccess(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	req := models.LoginRequest{Username: "marta", Password: "secret1"}
	auth.On("Login", mock.Anything, req).Return(&models.LoginResponse{
		User:  models.User{ID: "u1", Username: "marta", Role: models.RoleOwner},
		Token: "backend-token",
	}, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil)

	s, err := m.Login(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "backend-token", s.Token)
	assert.Equal(t, "marta", s.User.Username)
	assert.Equal(t, models.RoleOwner, s.User.Role)
	assert.False(t, s.LastValidated.IsZero())

	auth.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	auth.On("Login", mock.Anything, mock.Anything).
		Return(nil, &upstream.Error{StatusCode: http.StatusUnauthorized, Message: "bad credentials"})

	s, err := m.Login(context.Background(), models.LoginRequest{Username: "marta", Password: "wrong12"})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestValidateFreshSessionSkipsBackend(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	fresh := &Session{
		ID:            "s1",
		Token:         "backend-token",
		User:          models.User{Username: "marta", Role: models.RoleOwner},
		LastValidated: time.Now(),
	}
	store.On("Load", mock.Anything, "s1").Return(fresh, nil)

	s, err := m.Validate(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, fresh, s)

	auth.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
}

func TestValidateStaleSessionRefreshes(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	stale := &Session{
		ID:            "s1",
		Token:         "backend-token",
		User:          models.User{Username: "marta", Role: models.RoleAdmin},
		LastValidated: time.Now().Add(-time.Hour),
	}
	store.On("Load", mock.Anything, "s1").Return(stale, nil)
	auth.On("Me", mock.Anything, "backend-token").
		Return(&models.User{ID: "u1", Username: "marta", Role: models.RoleOwner}, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil)

	s, err := m.Validate(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, s.User.Role)
	assert.WithinDuration(t, time.Now(), s.LastValidated, time.Minute)

	auth.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestValidateStaleSessionBackendRejects(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	stale := &Session{
		ID:            "s1",
		Token:         "backend-token",
		LastValidated: time.Now().Add(-time.Hour),
	}
	store.On("Load", mock.Anything, "s1").Return(stale, nil)
	auth.On("Me", mock.Anything, "backend-token").
		Return(nil, &upstream.Error{StatusCode: http.StatusUnauthorized, Message: "token expired"})
	store.On("Delete", mock.Anything, "s1").Return(nil)

	s, err := m.Validate(context.Background(), "s1")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	store.AssertCalled(t, "Delete", mock.Anything, "s1")
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestValidateUnknownSession(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	store.On("Load", mock.Anything, "ghost").Return(nil, nil)

	s, err := m.Validate(context.Background(), "ghost")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogoutBackendFailureStillClears(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	s := &Session{ID: "s1", Token: "backend-token"}
	store.On("Load", mock.Anything, "s1").Return(s, nil)
	auth.On("Logout", mock.Anything, "backend-token").Return(errors.New("backend down"))
	store.On("Delete", mock.Anything, "s1").Return(nil)

	err := m.Logout(context.Background(), "s1")
	require.NoError(t, err)

	store.AssertCalled(t, "Delete", mock.Anything, "s1")
}

func TestLogoutMissingSession(t *testing.T) {
	auth := new(MockAuthAPI)
	store := new(MockStore)
	m := NewManager(auth, store, testLogger(), 5*time.Minute)

	store.On("Load", mock.Anything, "gone").Return(nil, nil)
	store.On("Delete", mock.Anything, "gone").Return(nil)

	err := m.Logout(context.Background(), "gone")
	require.NoError(t, err)

	auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}
