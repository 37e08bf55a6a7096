package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, req models.LoginRequest) (*session.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

type MockTokenMaker struct {
	mock.Mock
}

func (m *MockTokenMaker) GenerateToken(sessionID, username, role string) (string, error) {
	args := m.Called(sessionID, username, role)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ownerSession := &session.Session{
		ID:    "s1",
		Token: "backend-token",
		User:  models.User{ID: "u1", Username: "marta", Role: models.RoleOwner},
	}
	adminSession := &session.Session{
		ID:    "s2",
		Token: "backend-token",
		User:  models.User{ID: "u2", Username: "pablo", Role: models.RoleAdmin},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService, *MockTokenMaker)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "owner lands on members",
			requestBody: models.LoginRequest{Username: "marta", Password: "secret1"},
			setupMock: func(s *MockService, tm *MockTokenMaker) {
				s.On("Login", mock.Anything, mock.AnythingOfType("models.LoginRequest")).
					Return(ownerSession, nil)
				tm.On("GenerateToken", "s1", "marta", models.RoleOwner).
					Return("jwt-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"default_page":"/members"`,
		},
		{
			name:        "admin lands on check-in",
			requestBody: models.LoginRequest{Username: "pablo", Password: "secret1"},
			setupMock: func(s *MockService, tm *MockTokenMaker) {
				s.On("Login", mock.Anything, mock.AnythingOfType("models.LoginRequest")).
					Return(adminSession, nil)
				tm.On("GenerateToken", "s2", "pablo", models.RoleAdmin).
					Return("jwt-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"default_page":"/check-in"`,
		},
		{
			name:           "malformed json",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService, _ *MockTokenMaker) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "missing credentials",
			requestBody:    models.LoginRequest{},
			setupMock:      func(_ *MockService, _ *MockTokenMaker) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Username is a required field, field Password is a required field`,
		},
		{
			name:        "invalid credentials",
			requestBody: models.LoginRequest{Username: "marta", Password: "wrong12"},
			setupMock: func(s *MockService, _ *MockTokenMaker) {
				s.On("Login", mock.Anything, mock.AnythingOfType("models.LoginRequest")).
					Return(nil, session.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid credentials"}`,
		},
		{
			name:        "backend unavailable",
			requestBody: models.LoginRequest{Username: "marta", Password: "secret1"},
			setupMock: func(s *MockService, _ *MockTokenMaker) {
				s.On("Login", mock.Anything, mock.AnythingOfType("models.LoginRequest")).
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not sign in"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockMaker := new(MockTokenMaker)
			tt.setupMock(mockService, mockMaker)

			handler := New(logger, mockService, mockMaker)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
			mockMaker.AssertExpectations(t)
		})
	}
}
