package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/facematch"
	"github.com/presensia/presensia/internal/provider"
)

type ProfileStore interface {
	Upsert(ctx context.Context, profile *domain.ReferenceProfile) error
	GetByStudent(ctx context.Context, studentID uuid.UUID) (*domain.ReferenceProfile, error)
}

type StudentGetter interface {
	GetStudentByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
}

// RegistrationConfig tunes the enrollment quality bar.
type RegistrationConfig struct {
	// MinDecodeRate is the fraction of submitted samples that must
	// yield a usable descriptor for enrollment to succeed.
	MinDecodeRate float64
}

// RegistrationService builds a student's reference profile from a batch
// of captured face images. Samples that fail to decode are skipped;
// enrollment fails only when too few survive.
type RegistrationService struct {
	profiles ProfileStore
	students StudentGetter
	provider provider.EmbeddingProvider
	audit    AuditRecorder
	logger   *slog.Logger
	cfg      RegistrationConfig
}

func NewRegistrationService(
	profiles ProfileStore,
	students StudentGetter,
	embeddingProvider provider.EmbeddingProvider,
	auditRecorder AuditRecorder,
	logger *slog.Logger,
	cfg RegistrationConfig,
) *RegistrationService {
	if cfg.MinDecodeRate == 0 {
		cfg.MinDecodeRate = 0.6
	}

	return &RegistrationService{
		profiles: profiles,
		students: students,
		provider: embeddingProvider,
		audit:    auditRecorder,
		logger:   logger.With("component", "registration"),
		cfg:      cfg,
	}
}

// RegisterResult reports what the enrollment produced.
type RegisterResult struct {
	Profile      *domain.ReferenceProfile
	SamplesGiven int
	SamplesUsed  int
}

// Register extracts a descriptor from every sample, averages the ones
// that decoded, and stores the result as the student's reference
// profile. Re-registration overwrites the previous profile.
func (s *RegistrationService) Register(ctx context.Context, studentID uuid.UUID, samples [][]byte) (*RegisterResult, error) {
	if len(samples) == 0 {
		return nil, domain.ErrValidationFailed.WithError(errors.New("at least one face sample is required"))
	}

	student, err := s.students.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	descriptors := make([][]float64, 0, len(samples))
	var qualitySum float64
	for i, sample := range samples {
		descriptor, err := s.provider.ExtractDescriptor(ctx, sample)
		if err != nil {
			if errors.Is(err, domain.ErrNoFaceDetected) || errors.Is(err, domain.ErrInvalidImage) {
				s.logger.WarnContext(ctx, "skipping unusable face sample",
					slog.Int("sample_index", i),
					slog.String("error", err.Error()),
				)
				continue
			}
			return nil, err
		}
		descriptors = append(descriptors, descriptor.Embedding)
		qualitySum += descriptor.Quality
	}

	if len(descriptors) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	decodeRate := float64(len(descriptors)) / float64(len(samples))
	if decodeRate < s.cfg.MinDecodeRate {
		return nil, domain.ErrTooFewSamples.WithError(
			fmt.Errorf("only %d of %d samples were usable", len(descriptors), len(samples)))
	}

	reference, err := facematch.AverageDescriptor(descriptors)
	if err != nil {
		return nil, err
	}

	profile := &domain.ReferenceProfile{
		StudentID:   studentID,
		Embedding:   reference,
		Confidence:  qualitySum / float64(len(descriptors)),
		Outcome:     domain.FaceMatched,
		SampleCount: len(descriptors),
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	s.audit.Record(ctx, studentID, domain.ActivityFaceRegistration,
		fmt.Sprintf("Face profile registered for %s from %d samples", student.NIM, len(descriptors)))

	return &RegisterResult{
		Profile:      profile,
		SamplesGiven: len(samples),
		SamplesUsed:  len(descriptors),
	}, nil
}
