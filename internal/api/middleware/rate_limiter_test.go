package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/presensia/internal/domain"
)

func newRateLimitedApp(t *testing.T, rl *RateLimiter, userID uuid.UUID) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *domain.AppError
			if errors.As(err, &appErr) {
				return c.SendStatus(appErr.StatusCode)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals(LocalUserID, userID)
		}
		return c.Next()
	})
	app.Use(rl.Handler())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func TestRateLimiter_EnforcesLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Max: 3, Window: time.Minute})
	defer rl.Stop()
	app := newRateLimitedApp(t, rl, uuid.New())

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestRateLimiter_SetsHeaders(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Max: 10, Window: time.Minute})
	defer rl.Stop()
	app := newRateLimitedApp(t, rl, uuid.New())

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "10", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
}

func TestRateLimiter_IsolatesUsers(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Max: 1, Window: time.Minute})
	defer rl.Stop()

	first := newRateLimitedApp(t, rl, uuid.New())
	second := newRateLimitedApp(t, rl, uuid.New())

	resp, err := first.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = first.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// A different user is unaffected
	resp, err = second.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimiter_SkipsAnonymous(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Max: 1, Window: time.Minute})
	defer rl.Stop()
	app := newRateLimitedApp(t, rl, uuid.Nil)

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
