package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/domain"
)

type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	ListAll(ctx context.Context) ([]domain.Session, error)
	ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]domain.Session, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Session, error)
}

type EnrollmentStore interface {
	Enroll(ctx context.Context, studentID, sessionID uuid.UUID) error
}

// DefaultGeofence is applied when a session is created without an
// explicit classroom location.
var DefaultGeofence = domain.Geofence{
	Latitude:     -6.2088,
	Longitude:    106.8456,
	RadiusMeters: 50,
}

// SessionService manages class sessions and enrollment.
type SessionService struct {
	sessions    SessionStore
	enrollments EnrollmentStore
	audit       AuditRecorder
}

func NewSessionService(sessions SessionStore, enrollments EnrollmentStore, auditRecorder AuditRecorder) *SessionService {
	return &SessionService{
		sessions:    sessions,
		enrollments: enrollments,
		audit:       auditRecorder,
	}
}

// CreateRequest describes a new class session. Geofence is optional and
// falls back to DefaultGeofence.
type CreateRequest struct {
	Code       string
	Name       string
	Schedule   string
	LecturerID uuid.UUID
	Geofence   *domain.Geofence
}

func (s *SessionService) Create(ctx context.Context, req CreateRequest) (*domain.Session, error) {
	if req.Code == "" || req.Name == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("code and name are required"))
	}

	geofence := DefaultGeofence
	if req.Geofence != nil {
		if req.Geofence.RadiusMeters <= 0 {
			return nil, domain.ErrValidationFailed.WithError(errors.New("radius_meters must be positive"))
		}
		geofence = *req.Geofence
	}

	session := &domain.Session{
		Code:       req.Code,
		Name:       req.Name,
		Schedule:   req.Schedule,
		LecturerID: req.LecturerID,
		Geofence:   geofence,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, req.LecturerID, domain.ActivityClassAdded,
		fmt.Sprintf("Class %s (%s) created", session.Name, session.Code))

	return session, nil
}

func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

// ListFor returns the sessions visible to the given user: students see
// their enrolled sessions, lecturers see the ones they teach.
func (s *SessionService) ListFor(ctx context.Context, userID uuid.UUID, userType domain.UserType) ([]domain.Session, error) {
	switch userType {
	case domain.UserStudent:
		return s.sessions.ListByStudent(ctx, userID)
	case domain.UserLecturer:
		return s.sessions.ListByLecturer(ctx, userID)
	default:
		return s.sessions.ListAll(ctx)
	}
}

// Enroll adds a student to a session. Enrolling twice is a no-op.
func (s *SessionService) Enroll(ctx context.Context, studentID, sessionID uuid.UUID) error {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return err
	}
	return s.enrollments.Enroll(ctx, studentID, sessionID)
}
