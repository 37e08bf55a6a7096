package create

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, token string, req models.CreateMemberRequest) (*models.Member, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validRequest := models.CreateMemberRequest{
		FirstName:   "Ana",
		LastName:    "Ruiz",
		DNI:         "40222333",
		StartDate:   "2026-01-10",
		RenewalDate: "2026-02-10",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful registration",
			requestBody: validRequest,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "backend-token", mock.AnythingOfType("models.CreateMemberRequest")).
					Return(&models.Member{ID: "m1", DNI: "40222333"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"dni":"40222333"`,
		},
		{
			name:           "malformed json",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "missing required fields",
			requestBody: models.CreateMemberRequest{
				FirstName: "Ana",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field LastName is a required field, field DNI is a required field, field StartDate is a required field, field RenewalDate is a required field`,
		},
		{
			name: "non alphanumeric national id",
			requestBody: models.CreateMemberRequest{
				FirstName:   "Ana",
				LastName:    "Ruiz",
				DNI:         "40.222-333",
				StartDate:   "2026-01-10",
				RenewalDate: "2026-02-10",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field DNI can contain only numbers and letters`,
		},
		{
			name:        "backend failure",
			requestBody: validRequest,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "backend-token", mock.AnythingOfType("models.CreateMemberRequest")).
					Return(nil, errors.New("backend down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not register member"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.UpstreamToken, "backend-token")
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
