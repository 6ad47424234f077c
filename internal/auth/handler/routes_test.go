package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VReis17/auth-service/config"
	"github.com/VReis17/auth-service/internal/auth/handler"
	"github.com/VReis17/auth-service/internal/auth/service"
	"github.com/VReis17/auth-service/internal/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterRoutes verifies that all routes are mounted correctly.
func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockAccountStore(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	authService := service.NewAuthService(mockStore, mockTokens, &config.Config{}, nil)
	authHandler := handler.NewAuthHandler(authService, mockTokens)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/api/health"},
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/forgot-password"},
		{http.MethodPost, "/api/auth/reset-password"},
		{http.MethodGet, "/api/auth/users/"},
		{http.MethodDelete, "/api/auth/users/some-id"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_%s_exists", tc.method, tc.path), func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)

			// We only care that the route exists. A 404 means it doesn't.
			// The actual handlers return other codes (400 for a missing
			// body, 401 for a missing token) which is fine here.
			assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestHealthRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockAccountStore(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	authService := service.NewAuthService(mockStore, mockTokens, &config.Config{}, nil)
	authHandler := handler.NewAuthHandler(authService, mockTokens)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "OK", body.Status)
	assert.NotEmpty(t, body.Timestamp)
}
