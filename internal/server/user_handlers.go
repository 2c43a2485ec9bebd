package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/kaushiks90/DevConnector/internal/gravatar"
	"github.com/kaushiks90/DevConnector/internal/middleware"
	"github.com/kaushiks90/DevConnector/internal/models"
	"github.com/kaushiks90/DevConnector/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

// Register handles new user registration. The response echoes the stored
// document, hashed password included, which legacy clients rely on.
func (s *Server) Register(c *fiber.Ctx) error {
	var form validation.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	if errs, ok := validation.Check(&form); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	existing, err := s.userRepo.GetByEmail(ctx, form.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"email": "Email already exists",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: string(hash),
		Avatar:   gravatar.URL(form.Email),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A racing register can still lose to the unique index.
		if models.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"email": "Email already exists",
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
		"avatar":   user.Avatar,
		"date":     user.CreatedAt,
	})
}

// Login verifies credentials and issues a signed bearer token.
func (s *Server) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	if errs, ok := validation.Check(&form); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ctx := c.UserContext()
	user, err := s.userRepo.GetByEmail(ctx, form.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"email": "User not found",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"password": "Password incorrect",
		})
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return c.JSON(fiber.Map{
		"success": true,
		"token":   "Bearer " + token,
	})
}

// CurrentUser returns the authenticated user's identity.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// generateToken signs a one-hour HS256 token carrying the user's display
// identity alongside the registered claim set.
func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    strconv.FormatUint(uint64(user.ID), 10),
		"name":   user.Name,
		"avatar": user.Avatar,
		"iss":    tokenIssuer,
		"aud":    tokenAudience,
		"exp":    now.Add(tokenTTL).Unix(),
		"iat":    now.Unix(),
		"nbf":    now.Unix(),
		"jti":    uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
