package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/auth"
	"github.com/presensia/presensia/internal/domain"
)

const (
	// LocalUserID is the key to retrieve the authenticated user id.
	LocalUserID = "user_id"
	// LocalClaims is the key to retrieve the full token claims.
	LocalClaims = "claims"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// Auth authenticates requests with a bearer login token.
func Auth(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return domain.ErrUnauthorized
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			// Don't reveal whether the token was expired or malformed
			return domain.ErrUnauthorized
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalClaims, claims)

		return c.Next()
	}
}

// RequireUserType rejects authenticated users of the wrong type.
func RequireUserType(userType domain.UserType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := GetClaims(c)
		if err != nil {
			return err
		}
		if claims.UserType != userType {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetUserID retrieves the authenticated user id from the Fiber context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// GetClaims retrieves the full token claims from the Fiber context.
func GetClaims(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := c.Locals(LocalClaims).(*auth.Claims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
