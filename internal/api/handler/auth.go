package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/service"
)

// AuthService authenticates campus users.
type AuthService interface {
	LoginStudent(ctx context.Context, nim string) (*service.LoginResult, error)
	LoginLecturer(ctx context.Context, code, password string) (*service.LoginResult, error)
}

// AuthHandler handles login endpoints.
type AuthHandler struct {
	service AuthService
	logger  *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: authService,
		logger:  logger,
	}
}

// StudentLoginRequest is the body for POST /v1/auth/student/login.
type StudentLoginRequest struct {
	NIM string `json:"nim" validate:"required"`
}

// LecturerLoginRequest is the body for POST /v1/auth/lecturer/login.
type LecturerLoginRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and identity.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// StudentLogin POST /v1/auth/student/login
func (h *AuthHandler) StudentLogin(c *fiber.Ctx) error {
	var req StudentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if err := validate.Struct(req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	result, err := h.service.LoginStudent(c.Context(), req.NIM)
	if err != nil {
		return err
	}

	return c.JSON(toLoginResponse(result))
}

// LecturerLogin POST /v1/auth/lecturer/login
func (h *AuthHandler) LecturerLogin(c *fiber.Ctx) error {
	var req LecturerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if err := validate.Struct(req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	result, err := h.service.LoginLecturer(c.Context(), req.Code, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(toLoginResponse(result))
}

func toLoginResponse(result *service.LoginResult) LoginResponse {
	return LoginResponse{
		Token:    result.Token,
		UserID:   result.UserID.String(),
		Name:     result.Name,
		UserType: string(result.UserType),
	}
}
