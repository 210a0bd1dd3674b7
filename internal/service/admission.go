package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/facematch"
	"github.com/presensia/presensia/internal/geo"
	"github.com/presensia/presensia/internal/provider"
	"github.com/presensia/presensia/internal/repository"
)

type SessionGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}

type AttendanceStoreInterface interface {
	FindForDay(ctx context.Context, studentID, sessionID uuid.UUID, attendedOn time.Time) (*domain.AttendanceEvent, error)
	Insert(ctx context.Context, event *domain.AttendanceEvent, attendedOn time.Time) error
	List(ctx context.Context, filter repository.ListFilter) ([]domain.AttendanceEvent, error)
}

type ProfileGetter interface {
	GetByStudent(ctx context.Context, studentID uuid.UUID) (*domain.ReferenceProfile, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, activityType domain.ActivityType, details string)
}

// SubmitRequest is one attendance submission. Exactly one of FaceImage
// and Embedding must be set; identity is always re-verified server-side
// against the stored reference profile, never taken from a client
// verdict.
type SubmitRequest struct {
	StudentID uuid.UUID
	SessionID uuid.UUID
	Location  domain.Location
	FaceImage []byte
	Embedding []float64
}

// SubmitResult carries the created event plus the proximity and
// identity diagnostics the caller renders as a trust indicator. On
// rejection the diagnostics gathered so far are still populated.
type SubmitResult struct {
	Event     *domain.AttendanceEvent
	Proximity geo.ProximityResult
	Identity  facematch.MatchResult
}

// AdmissionConfig tunes the decision pipeline.
type AdmissionConfig struct {
	Policy        facematch.Policy
	MinConfidence float64
	Timezone      *time.Location
}

// AdmissionService decides whether one attendance submission is
// accepted: session lookup, duplicate guard, geofence check, face
// check, then commit.
type AdmissionService struct {
	sessions SessionGetter
	events   AttendanceStoreInterface
	profiles ProfileGetter
	provider provider.EmbeddingProvider
	audit    AuditRecorder
	cfg      AdmissionConfig
	now      func() time.Time
}

func NewAdmissionService(
	sessions SessionGetter,
	events AttendanceStoreInterface,
	profiles ProfileGetter,
	embeddingProvider provider.EmbeddingProvider,
	auditRecorder AuditRecorder,
	cfg AdmissionConfig,
) *AdmissionService {
	if cfg.Policy == "" {
		cfg.Policy = facematch.PolicyStrict
	}
	if cfg.MinConfidence == 0 {
		cfg.MinConfidence = facematch.DefaultMinConfidence
	}
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}

	return &AdmissionService{
		sessions: sessions,
		events:   events,
		profiles: profiles,
		provider: embeddingProvider,
		audit:    auditRecorder,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Submit runs the admission pipeline for one submission attempt.
func (s *AdmissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if len(req.FaceImage) == 0 && len(req.Embedding) == 0 {
		return nil, domain.ErrValidationFailed.WithError(errors.New("face_data or embedding is required"))
	}

	session, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now().In(s.cfg.Timezone)
	day := calendarDay(submittedAt)

	existing, err := s.events.FindForDay(ctx, req.StudentID, req.SessionID, day)
	if err != nil {
		return nil, fmt.Errorf("check duplicate attendance: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMarked
	}

	result := &SubmitResult{}

	sample := geo.Coordinate{Latitude: req.Location.Latitude, Longitude: req.Location.Longitude}
	result.Proximity = geo.ValidateProximity(sample, session.Geofence)
	if !result.Proximity.Accepted {
		return result, domain.ErrOutOfRange.WithMessage(result.Proximity.Message)
	}

	identity, err := s.verifyIdentity(ctx, req)
	if err != nil {
		return result, err
	}
	result.Identity = *identity
	if !identity.IsMatch {
		return result, domain.ErrFaceMismatch
	}

	event := &domain.AttendanceEvent{
		StudentID:   req.StudentID,
		SessionID:   req.SessionID,
		Status:      domain.StatusPresent,
		Location:    req.Location,
		FaceOutcome: domain.FaceMatched,
		OccurredAt:  submittedAt,
	}

	if err := s.events.Insert(ctx, event, day); err != nil {
		if errors.Is(err, domain.ErrAlreadyMarked) {
			// Lost the race to a concurrent submission.
			return result, domain.ErrAlreadyMarked
		}
		return result, domain.ErrInternal.WithError(err)
	}
	result.Event = event

	s.audit.Record(ctx, req.StudentID, domain.ActivityAttendance,
		fmt.Sprintf("Attendance marked for %s", session.Name))

	return result, nil
}

// verifyIdentity resolves the candidate embedding and scores it against
// the student's reference profile.
func (s *AdmissionService) verifyIdentity(ctx context.Context, req SubmitRequest) (*facematch.MatchResult, error) {
	profile, err := s.profiles.GetByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	candidate := req.Embedding
	if len(candidate) == 0 {
		descriptor, err := s.provider.ExtractDescriptor(ctx, req.FaceImage)
		if err != nil {
			return nil, err
		}
		candidate = descriptor.Embedding
	}

	match, err := facematch.EvaluateMatch(candidate, profile.Embedding, s.cfg.Policy, s.cfg.MinConfidence)
	if err != nil {
		return nil, err
	}

	return &match, nil
}

// ListEvents returns attendance events filtered by student and/or
// session.
func (s *AdmissionService) ListEvents(ctx context.Context, filter repository.ListFilter) ([]domain.AttendanceEvent, error) {
	return s.events.List(ctx, filter)
}

// calendarDay truncates a timestamp to midnight in its own location.
func calendarDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
