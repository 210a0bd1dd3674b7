package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/service"
)

type fakeAuthService struct {
	result *service.LoginResult
	err    error
}

func (f *fakeAuthService) LoginStudent(_ context.Context, _ string) (*service.LoginResult, error) {
	return f.result, f.err
}

func (f *fakeAuthService) LoginLecturer(_ context.Context, _, _ string) (*service.LoginResult, error) {
	return f.result, f.err
}

func TestAuthHandler_StudentLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{result: &service.LoginResult{
			Token:    "token-abc",
			UserID:   uuid.New(),
			Name:     "Budi",
			UserType: domain.UserStudent,
		}}
		handler := NewAuthHandler(svc, slog.Default())
		app := newTestApp(nil, func(app *fiber.App) {
			app.Post("/v1/auth/student/login", handler.StudentLogin)
		})

		payload, _ := json.Marshal(map[string]string{"nim": "2110511001"})
		req := httptest.NewRequest("POST", "/v1/auth/student/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body LoginResponse
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "token-abc", body.Token)
		assert.Equal(t, "student", body.UserType)
	})

	t.Run("missing nim", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{}, slog.Default())
		app := newTestApp(nil, func(app *fiber.App) {
			app.Post("/v1/auth/student/login", handler.StudentLogin)
		})

		payload, _ := json.Marshal(map[string]string{})
		req := httptest.NewRequest("POST", "/v1/auth/student/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown student", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{err: domain.ErrInvalidCredentials}, slog.Default())
		app := newTestApp(nil, func(app *fiber.App) {
			app.Post("/v1/auth/student/login", handler.StudentLogin)
		})

		payload, _ := json.Marshal(map[string]string{"nim": "9999999999"})
		req := httptest.NewRequest("POST", "/v1/auth/student/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthHandler_LecturerLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{result: &service.LoginResult{
			Token:    "token-xyz",
			UserID:   uuid.New(),
			Name:     "Dr. Sari",
			UserType: domain.UserLecturer,
		}}
		handler := NewAuthHandler(svc, slog.Default())
		app := newTestApp(nil, func(app *fiber.App) {
			app.Post("/v1/auth/lecturer/login", handler.LecturerLogin)
		})

		payload, _ := json.Marshal(map[string]string{"code": "LEC-001", "password": "rahasia123"})
		req := httptest.NewRequest("POST", "/v1/auth/lecturer/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{err: domain.ErrInvalidCredentials}, slog.Default())
		app := newTestApp(nil, func(app *fiber.App) {
			app.Post("/v1/auth/lecturer/login", handler.LecturerLogin)
		})

		payload, _ := json.Marshal(map[string]string{"code": "LEC-001", "password": "salah"})
		req := httptest.NewRequest("POST", "/v1/auth/lecturer/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
