package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/api/middleware"
	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/service"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB
	maxSamples   = 20
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// RegistrationService enrolls a student's reference face profile.
type RegistrationService interface {
	Register(ctx context.Context, studentID uuid.UUID, samples [][]byte) (*service.RegisterResult, error)
}

// RegistrationHandler handles face profile enrollment.
type RegistrationHandler struct {
	service RegistrationService
	logger  *slog.Logger
}

func NewRegistrationHandler(registration RegistrationService, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: registration,
		logger:  logger,
	}
}

// RegisterFaceResponse is the body returned after enrollment.
type RegisterFaceResponse struct {
	ProfileID    string  `json:"profile_id"`
	SamplesGiven int     `json:"samples_given"`
	SamplesUsed  int     `json:"samples_used"`
	Confidence   float64 `json:"confidence"`
	UpdatedAt    string  `json:"updated_at"`
}

// Register POST /v1/faces/register - enroll the authenticated student's face
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		return err
	}
	if claims.UserType != domain.UserStudent {
		return domain.ErrForbidden
	}

	form, err := c.MultipartForm()
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	files := form.File["images"]
	if len(files) == 0 {
		return domain.ErrValidationFailed.WithMessage("at least one image is required")
	}
	if len(files) > maxSamples {
		return domain.ErrValidationFailed.WithMessage("too many images in one registration")
	}

	samples := make([][]byte, 0, len(files))
	for _, file := range files {
		imageBytes, err := readImageFile(file)
		if err != nil {
			return err
		}
		samples = append(samples, imageBytes)
	}

	result, err := h.service.Register(c.Context(), claims.UserID, samples)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterFaceResponse{
		ProfileID:    result.Profile.ID.String(),
		SamplesGiven: result.SamplesGiven,
		SamplesUsed:  result.SamplesUsed,
		Confidence:   result.Profile.Confidence,
		UpdatedAt:    result.Profile.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// readImageFile validates size and content type before reading.
func readImageFile(file *multipart.FileHeader) ([]byte, error) {
	if file.Size == 0 || file.Size > maxImageSize {
		return nil, domain.ErrInvalidImage
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}
