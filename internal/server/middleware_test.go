package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/kaushiks90/DevConnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    "9",
		"name":   "Token User",
		"avatar": "https://www.gravatar.com/avatar/z",
		"iss":    tokenIssuer,
		"aud":    tokenAudience,
		"exp":    now.Add(time.Hour).Unix(),
		"iat":    now.Unix(),
		"nbf":    now.Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthRequired(t *testing.T) {
	s := &Server{config: testConfig()}

	app := fiber.New()
	app.Get("/private", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "No Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Header",
			authHeader:     "Token abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage Token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret",
			authHeader:     "Bearer " + signTestToken(t, "other_secret", nil),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired Token",
			authHeader: "Bearer " + signTestToken(t, "test_secret", func(c jwt.MapClaims) {
				c["exp"] = time.Now().Add(-time.Hour).Unix()
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong Issuer",
			authHeader: "Bearer " + signTestToken(t, "test_secret", func(c jwt.MapClaims) {
				c["iss"] = "someone-else"
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong Audience",
			authHeader: "Bearer " + signTestToken(t, "test_secret", func(c jwt.MapClaims) {
				c["aud"] = "someone-else"
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Non Numeric Subject",
			authHeader: "Bearer " + signTestToken(t, "test_secret", func(c jwt.MapClaims) {
				c["sub"] = "abc"
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Token",
			authHeader:     "Bearer " + signTestToken(t, "test_secret", nil),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequired_SetsPrincipal(t *testing.T) {
	s := &Server{config: testConfig()}

	app := fiber.New()
	app.Get("/private", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID": c.Locals("userID"),
			"name":   c.Locals("name"),
			"avatar": c.Locals("avatar"),
		})
	})

	token := signTestToken(t, "test_secret", func(c jwt.MapClaims) {
		c["sub"] = strconv.Itoa(31)
	})
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(31), body["userID"])
	assert.Equal(t, "Token User", body["name"])
}

// End to end: log in, use the returned token against a protected route.
func TestLoginThenAuthorizedRequest(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: mockRepo}

	user := &models.User{ID: 3, Name: "Round Trip", Email: "rt@example.com"}
	token, err := s.generateToken(user)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/private", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(3), body["userID"])
}
