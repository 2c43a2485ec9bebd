package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kaushiks90/DevConnector/internal/config"
	"github.com/kaushiks90/DevConnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test_secret", Port: "5000"}
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegister_Success(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Post("/register", s.Register)

	mockRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 1
	}).Return(nil)

	resp := postJSON(t, app, "/register", map[string]string{
		"name":     "Test User",
		"email":    "new@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Test User", body["name"])
	assert.Equal(t, "new@example.com", body["email"])

	// The stored password must be a bcrypt hash of the submitted one.
	stored, _ := body["password"].(string)
	assert.NotEqual(t, "password123", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("password123")))

	// Avatar is derived from the email.
	avatar, _ := body["avatar"].(string)
	assert.Contains(t, avatar, "gravatar.com/avatar/")

	mockRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Post("/register", s.Register)

	mockRepo.On("GetByEmail", mock.Anything, "exists@example.com").
		Return(&models.User{ID: 1, Email: "exists@example.com"}, nil)

	resp := postJSON(t, app, "/register", map[string]string{
		"name":     "Test User",
		"email":    "exists@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Email already exists", body["email"])
}

func TestRegister_Validation(t *testing.T) {
	app := fiber.New()
	s := &Server{config: testConfig(), userRepo: new(MockUserRepository)}
	app.Post("/register", s.Register)

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{
			name:  "Missing Name",
			body:  map[string]string{"email": "a@b.com", "password": "password123"},
			field: "name",
		},
		{
			name:  "Invalid Email",
			body:  map[string]string{"name": "Test User", "email": "not-an-email", "password": "password123"},
			field: "email",
		},
		{
			name:  "Short Password",
			body:  map[string]string{"name": "Test User", "email": "a@b.com", "password": "abc"},
			field: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/register", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Contains(t, body, tt.field)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       7,
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hash),
		Avatar:   "https://www.gravatar.com/avatar/x",
	}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		expectedField  string
		expectedMsg    string
	}{
		{
			name: "Success",
			body: map[string]string{"email": "test@example.com", "password": "password123"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unknown Email",
			body: map[string]string{"email": "nobody@example.com", "password": "password123"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedField:  "email",
			expectedMsg:    "User not found",
		},
		{
			name: "Wrong Password",
			body: map[string]string{"email": "test@example.com", "password": "wrongpass"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(user, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "password",
			expectedMsg:    "Password incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := &Server{config: testConfig(), userRepo: mockRepo}
			app.Post("/login", s.Login)

			resp := postJSON(t, app, "/login", tt.body)
			require.Equal(t, tt.expectedStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.expectedField != "" {
				assert.Equal(t, tt.expectedMsg, body[tt.expectedField])
			}
		})
	}
}

func TestLogin_TokenClaims(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       42,
		Name:     "Claim Holder",
		Email:    "claims@example.com",
		Password: string(hash),
		Avatar:   "https://www.gravatar.com/avatar/y",
	}

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "claims@example.com").Return(user, nil)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Post("/login", s.Login)

	resp := postJSON(t, app, "/login", map[string]string{
		"email":    "claims@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	tokenStr, _ := body["token"].(string)
	require.True(t, strings.HasPrefix(tokenStr, "Bearer "))

	parsed, err := jwt.Parse(strings.TrimPrefix(tokenStr, "Bearer "), func(token *jwt.Token) (any, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "Claim Holder", claims["name"])
	assert.Equal(t, user.Avatar, claims["avatar"])
	assert.Equal(t, tokenIssuer, claims["iss"])
	assert.Equal(t, tokenAudience, claims["aud"])
	assert.NotEmpty(t, claims["jti"])
	assert.NotNil(t, claims["exp"])
}

func TestCurrentUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.User{
		ID:    5,
		Name:  "Current User",
		Email: "current@example.com",
	}, nil)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Get("/current", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(5))
		return s.CurrentUser(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/current", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(5), body["id"])
	assert.Equal(t, "Current User", body["name"])
	assert.Equal(t, "current@example.com", body["email"])
}
