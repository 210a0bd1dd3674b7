package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/api/middleware"
	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/repository"
	"github.com/presensia/presensia/internal/service"
)

var validate = validator.New()

// AdmissionService runs the attendance decision pipeline.
type AdmissionService interface {
	Submit(ctx context.Context, req service.SubmitRequest) (*service.SubmitResult, error)
	ListEvents(ctx context.Context, filter repository.ListFilter) ([]domain.AttendanceEvent, error)
}

// SubmitLimiter throttles attendance submissions per student.
type SubmitLimiter interface {
	CheckSubmitLimit(ctx context.Context, studentID uuid.UUID, limit int) error
}

// AttendanceHandler handles attendance submission and listing.
type AttendanceHandler struct {
	service     AdmissionService
	limiter     SubmitLimiter
	submitLimit int
	logger      *slog.Logger
}

func NewAttendanceHandler(admission AdmissionService, limiter SubmitLimiter, submitLimit int, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service:     admission,
		limiter:     limiter,
		submitLimit: submitLimit,
		logger:      logger,
	}
}

// SubmitAttendanceRequest is the body for POST /v1/attendance.
type SubmitAttendanceRequest struct {
	SessionID string    `json:"session_id" validate:"required,uuid"`
	Latitude  float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64   `json:"longitude" validate:"min=-180,max=180"`
	FaceImage string    `json:"face_image,omitempty"`
	Embedding []float64 `json:"embedding,omitempty"`
}

// SubmitAttendanceResponse reports the accepted event plus the checks
// the client renders.
type SubmitAttendanceResponse struct {
	EventID        string  `json:"event_id"`
	Status         string  `json:"status"`
	DistanceMeters int     `json:"distance_meters"`
	Message        string  `json:"message"`
	FaceConfidence float64 `json:"face_confidence"`
	OccurredAt     string  `json:"occurred_at"`
}

// Submit POST /v1/attendance - mark attendance for the authenticated student
func (h *AttendanceHandler) Submit(c *fiber.Ctx) error {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return err
	}
	if claims.UserType != domain.UserStudent {
		return domain.ErrForbidden
	}

	var req SubmitAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if err := validate.Struct(req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	if err := h.limiter.CheckSubmitLimit(c.Context(), claims.UserID, h.submitLimit); err != nil {
		return err
	}

	var faceImage []byte
	if req.FaceImage != "" {
		faceImage, err = base64.StdEncoding.DecodeString(req.FaceImage)
		if err != nil {
			return domain.ErrInvalidImage.WithError(err)
		}
	}

	result, err := h.service.Submit(c.Context(), service.SubmitRequest{
		StudentID: claims.UserID,
		SessionID: sessionID,
		Location:  domain.Location{Latitude: req.Latitude, Longitude: req.Longitude},
		FaceImage: faceImage,
		Embedding: req.Embedding,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(SubmitAttendanceResponse{
		EventID:        result.Event.ID.String(),
		Status:         string(result.Event.Status),
		DistanceMeters: result.Proximity.DistanceMeters,
		Message:        result.Proximity.Message,
		FaceConfidence: result.Identity.Confidence,
		OccurredAt:     result.Event.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// AttendanceEventResponse is one event in list responses.
type AttendanceEventResponse struct {
	EventID     string  `json:"event_id"`
	StudentID   string  `json:"student_id"`
	SessionID   string  `json:"session_id"`
	Status      string  `json:"status"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	FaceOutcome string  `json:"face_outcome"`
	OccurredAt  string  `json:"occurred_at"`
}

// List GET /v1/attendance - list attendance events
//
// Students see their own events; lecturers filter by session.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return err
	}

	filter := repository.ListFilter{}
	if sessionParam := c.Query("session_id"); sessionParam != "" {
		sessionID, err := uuid.Parse(sessionParam)
		if err != nil {
			return domain.ErrValidationFailed.WithError(err)
		}
		filter.SessionID = sessionID
	}

	switch claims.UserType {
	case domain.UserStudent:
		filter.StudentID = claims.UserID
	case domain.UserLecturer:
		if filter.SessionID == uuid.Nil {
			return domain.ErrValidationFailed.WithError(errors.New("session_id is required"))
		}
	default:
		return domain.ErrForbidden
	}

	events, err := h.service.ListEvents(c.Context(), filter)
	if err != nil {
		return err
	}

	response := make([]AttendanceEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, AttendanceEventResponse{
			EventID:     event.ID.String(),
			StudentID:   event.StudentID.String(),
			SessionID:   event.SessionID.String(),
			Status:      string(event.Status),
			Latitude:    event.Location.Latitude,
			Longitude:   event.Location.Longitude,
			FaceOutcome: string(event.FaceOutcome),
			OccurredAt:  event.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return c.JSON(fiber.Map{"data": response})
}
