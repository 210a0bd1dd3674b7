package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/api/middleware"
	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/service"
)

// SessionService manages class sessions and enrollment.
type SessionService interface {
	Create(ctx context.Context, req service.CreateRequest) (*domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	ListFor(ctx context.Context, userID uuid.UUID, userType domain.UserType) ([]domain.Session, error)
	Enroll(ctx context.Context, studentID, sessionID uuid.UUID) error
}

// SessionHandler handles class session endpoints.
type SessionHandler struct {
	service SessionService
	logger  *slog.Logger
}

func NewSessionHandler(sessions SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: sessions,
		logger:  logger,
	}
}

// CreateSessionRequest is the body for POST /v1/sessions.
type CreateSessionRequest struct {
	Code         string   `json:"code" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Schedule     string   `json:"schedule"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	RadiusMeters *float64 `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
}

// SessionResponse is one session in responses.
type SessionResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Schedule     string  `json:"schedule"`
	LecturerID   string  `json:"lecturer_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	CreatedAt    string  `json:"created_at"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:           s.ID.String(),
		Code:         s.Code,
		Name:         s.Name,
		Schedule:     s.Schedule,
		LecturerID:   s.LecturerID.String(),
		Latitude:     s.Geofence.Latitude,
		Longitude:    s.Geofence.Longitude,
		RadiusMeters: s.Geofence.RadiusMeters,
		CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create POST /v1/sessions - create a class session (lecturer only)
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return err
	}

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if err := validate.Struct(req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	createReq := service.CreateRequest{
		Code:       req.Code,
		Name:       req.Name,
		Schedule:   req.Schedule,
		LecturerID: claims.UserID,
	}
	if req.Latitude != nil && req.Longitude != nil && req.RadiusMeters != nil {
		createReq.Geofence = &domain.Geofence{
			Latitude:     *req.Latitude,
			Longitude:    *req.Longitude,
			RadiusMeters: *req.RadiusMeters,
		}
	}

	session, err := h.service.Create(c.Context(), createReq)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(session))
}

// List GET /v1/sessions - list sessions visible to the caller
func (h *SessionHandler) List(c *fiber.Ctx) error {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return err
	}

	sessions, err := h.service.ListFor(c.Context(), claims.UserID, claims.UserType)
	if err != nil {
		return err
	}

	response := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		response = append(response, toSessionResponse(&sessions[i]))
	}

	return c.JSON(fiber.Map{"data": response})
}

// Get GET /v1/sessions/:id - fetch one session
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	session, err := h.service.Get(c.Context(), sessionID)
	if err != nil {
		return err
	}

	return c.JSON(toSessionResponse(session))
}

// Enroll POST /v1/sessions/:id/enroll - enroll the authenticated student
func (h *SessionHandler) Enroll(c *fiber.Ctx) error {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return err
	}
	if claims.UserType != domain.UserStudent {
		return domain.ErrForbidden
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	if err := h.service.Enroll(c.Context(), claims.UserID, sessionID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
