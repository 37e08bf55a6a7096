package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	libjwt "github.com/cajimenez96/gym-console/internal/lib/jwt"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/session"
)

type MockParser struct {
	mock.Mock
}

func (m *MockParser) ParseToken(tokenStr string) (*libjwt.SessionClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*libjwt.SessionClaims), args.Error(1)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, sessionID string) (*session.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		setupMocks     func(*MockParser, *MockValidator)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:   "valid token and live session",
			header: "Bearer good-token",
			setupMocks: func(p *MockParser, v *MockValidator) {
				p.On("ParseToken", "good-token").Return(&libjwt.SessionClaims{
					SessionID: "s1", Username: "marta", Role: models.RoleOwner,
				}, nil)
				v.On("Validate", mock.Anything, "s1").Return(&session.Session{
					ID:    "s1",
					Token: "backend-token",
					User:  models.User{Username: "marta", Role: models.RoleOwner},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			header:         "",
			setupMocks:     func(_ *MockParser, _ *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			setupMocks:     func(_ *MockParser, _ *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "broken token",
			header: "Bearer broken",
			setupMocks: func(p *MockParser, _ *MockValidator) {
				p.On("ParseToken", "broken").Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "dead session",
			header: "Bearer good-token",
			setupMocks: func(p *MockParser, v *MockValidator) {
				p.On("ParseToken", "good-token").Return(&libjwt.SessionClaims{SessionID: "s1"}, nil)
				v.On("Validate", mock.Anything, "s1").Return(nil, session.ErrNotAuthenticated)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(MockParser)
			validator := new(MockValidator)
			tt.setupMocks(parser, validator)

			nextCalled := false
			var gotToken, gotRole, gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotToken = TokenFrom(r.Context())
				gotRole = RoleFrom(r.Context())
				gotUser = UserFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/members", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			Auth(parser, validator, testLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectNext {
				assert.Equal(t, "backend-token", gotToken)
				assert.Equal(t, models.RoleOwner, gotRole)
				assert.Equal(t, "marta", gotUser)
			}

			parser.AssertExpectations(t)
			validator.AssertExpectations(t)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		allowed        []string
		expectedStatus int
	}{
		{
			name:           "owner allowed on owner route",
			role:           models.RoleOwner,
			allowed:        []string{models.RoleOwner},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "admin rejected from owner route",
			role:           models.RoleAdmin,
			allowed:        []string{models.RoleOwner},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin allowed on shared route",
			role:           models.RoleAdmin,
			allowed:        []string{models.RoleOwner, models.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty role rejected",
			role:           "",
			allowed:        []string{models.RoleOwner},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/membership-plans", nil)
			req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))

			w := httptest.NewRecorder()
			RequireRoles(testLogger(), tt.allowed...)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RateLimit(testLogger(), 1, 1)(next)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/members", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/members", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
