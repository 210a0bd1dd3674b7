package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/presensia/internal/audit"
	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/facematch"
	"github.com/presensia/presensia/internal/provider"
	"github.com/presensia/presensia/internal/repository"
)

type fakeSessionStore struct {
	sessions map[uuid.UUID]*domain.Session
	err      error
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	session, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

type fakeAttendanceStore struct {
	existing  *domain.AttendanceEvent
	findErr   error
	insertErr error
	inserted  []*domain.AttendanceEvent
}

func (f *fakeAttendanceStore) FindForDay(_ context.Context, _, _ uuid.UUID, _ time.Time) (*domain.AttendanceEvent, error) {
	return f.existing, f.findErr
}

func (f *fakeAttendanceStore) Insert(_ context.Context, event *domain.AttendanceEvent, _ time.Time) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	event.ID = uuid.New()
	f.inserted = append(f.inserted, event)
	return nil
}

func (f *fakeAttendanceStore) List(_ context.Context, _ repository.ListFilter) ([]domain.AttendanceEvent, error) {
	return nil, nil
}

type fakeProfileStore struct {
	profile *domain.ReferenceProfile
	err     error
}

func (f *fakeProfileStore) GetByStudent(_ context.Context, _ uuid.UUID) (*domain.ReferenceProfile, error) {
	return f.profile, f.err
}

func (f *fakeProfileStore) Upsert(_ context.Context, profile *domain.ReferenceProfile) error {
	f.profile = profile
	return nil
}

type fakeProvider struct {
	descriptor *provider.Descriptor
	err        error
	calls      int
}

func (f *fakeProvider) ExtractDescriptor(_ context.Context, _ []byte) (*provider.Descriptor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.descriptor, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func referenceEmbedding() []float64 {
	embedding := make([]float64, domain.EmbeddingDimension)
	embedding[0] = 1
	return embedding
}

func nearbyLocation() domain.Location {
	return domain.Location{Latitude: -6.2088, Longitude: 106.8456}
}

func testSession(id uuid.UUID) *domain.Session {
	return &domain.Session{
		ID:   id,
		Code: "IF-101",
		Name: "Algoritma",
		Geofence: domain.Geofence{
			Latitude:     -6.2088,
			Longitude:    106.8456,
			RadiusMeters: 50,
		},
	}
}

func TestAdmissionService_Submit_Accepted(t *testing.T) {
	sessionID := uuid.New()
	studentID := uuid.New()

	events := &fakeAttendanceStore{}
	svc := NewAdmissionService(
		&fakeSessionStore{sessions: map[uuid.UUID]*domain.Session{sessionID: testSession(sessionID)}},
		events,
		&fakeProfileStore{profile: &domain.ReferenceProfile{StudentID: studentID, Embedding: referenceEmbedding()}},
		&fakeProvider{},
		audit.NoOpRecorder{},
		AdmissionConfig{},
	)

	result, err := svc.Submit(context.Background(), SubmitRequest{
		StudentID: studentID,
		SessionID: sessionID,
		Location:  nearbyLocation(),
		Embedding: referenceEmbedding(),
	})

	require.NoError(t, err)
	require.NotNil(t, result.Event)
	assert.Equal(t, domain.StatusPresent, result.Event.Status)
	assert.Equal(t, domain.FaceMatched, result.Event.FaceOutcome)
	assert.True(t, result.Proximity.Accepted)
	assert.True(t, result.Identity.IsMatch)
	assert.InDelta(t, 1.0, result.Identity.Confidence, 1e-9)
	assert.Len(t, events.inserted, 1)
}

func TestAdmissionService_Submit_Rejections(t *testing.T) {
	sessionID := uuid.New()
	studentID := uuid.New()

	farEmbedding := make([]float64, domain.EmbeddingDimension)
	farEmbedding[0] = 5

	tests := []struct {
		name        string
		req         SubmitRequest
		events      *fakeAttendanceStore
		profiles    *fakeProfileStore
		expectedErr error
	}{
		{
			name: "no face data",
			req: SubmitRequest{
				StudentID: studentID,
				SessionID: sessionID,
				Location:  nearbyLocation(),
			},
			events:      &fakeAttendanceStore{},
			profiles:    &fakeProfileStore{},
			expectedErr: domain.ErrValidationFailed,
		},
		{
			name: "session not found",
			req: SubmitRequest{
				StudentID: studentID,
				SessionID: uuid.New(),
				Location:  nearbyLocation(),
				Embedding: referenceEmbedding(),
			},
			events:      &fakeAttendanceStore{},
			profiles:    &fakeProfileStore{},
			expectedErr: domain.ErrSessionNotFound,
		},
		{
			name: "already marked today",
			req: SubmitRequest{
				StudentID: studentID,
				SessionID: sessionID,
				Location:  nearbyLocation(),
				Embedding: referenceEmbedding(),
			},
			events:      &fakeAttendanceStore{existing: &domain.AttendanceEvent{ID: uuid.New()}},
			profiles:    &fakeProfileStore{},
			expectedErr: domain.ErrAlreadyMarked,
		},
		{
			name: "outside geofence",
			req: SubmitRequest{
				StudentID: studentID,
				SessionID: sessionID,
				Location:  domain.Location{Latitude: -6.3, Longitude: 106.8456},
				Embedding: referenceEmbedding(),
			},
			events:      &fakeAttendanceStore{},
			profiles:    &fakeProfileStore{profile: &domain.ReferenceProfile{Embedding: referenceEmbedding()}},
			expectedErr: domain.ErrOutOfRange,
		},
		{
			name: "no reference profile",
			req: SubmitRequest{
				StudentID: studentID,
				SessionID: sessionID,
				Location:  nearbyLocation(),
				Embedding: referenceEmbedding(),
			},
			events:      &fakeAttendanceStore{},
			profiles:    &fakeProfileStore{err: domain.ErrProfileNotFound},
			expectedErr: domain.ErrProfileNotFound,
		},
		{
			name: "face mismatch",
			req: SubmitRequest{
				StudentID: studentID,
				SessionID: sessionID,
				Location:  nearbyLocation(),
				Embedding: farEmbedding,
			},
			events:      &fakeAttendanceStore{},
			profiles:    &fakeProfileStore{profile: &domain.ReferenceProfile{Embedding: referenceEmbedding()}},
			expectedErr: domain.ErrFaceMismatch,
		},
		{
			name: "lost insert race",
			req: SubmitRequest{
				StudentID: studentID,
				SessionID: sessionID,
				Location:  nearbyLocation(),
				Embedding: referenceEmbedding(),
			},
			events:      &fakeAttendanceStore{insertErr: domain.ErrAlreadyMarked},
			profiles:    &fakeProfileStore{profile: &domain.ReferenceProfile{Embedding: referenceEmbedding()}},
			expectedErr: domain.ErrAlreadyMarked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAdmissionService(
				&fakeSessionStore{sessions: map[uuid.UUID]*domain.Session{sessionID: testSession(sessionID)}},
				tt.events,
				tt.profiles,
				&fakeProvider{},
				audit.NoOpRecorder{},
				AdmissionConfig{},
			)

			result, err := svc.Submit(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.expectedErr)
			if result != nil {
				assert.Nil(t, result.Event)
			}
			assert.Empty(t, tt.events.inserted)
		})
	}
}

func TestAdmissionService_Submit_OutOfRangeMessage(t *testing.T) {
	sessionID := uuid.New()

	svc := NewAdmissionService(
		&fakeSessionStore{sessions: map[uuid.UUID]*domain.Session{sessionID: testSession(sessionID)}},
		&fakeAttendanceStore{},
		&fakeProfileStore{profile: &domain.ReferenceProfile{Embedding: referenceEmbedding()}},
		&fakeProvider{},
		audit.NoOpRecorder{},
		AdmissionConfig{},
	)

	result, err := svc.Submit(context.Background(), SubmitRequest{
		StudentID: uuid.New(),
		SessionID: sessionID,
		Location:  domain.Location{Latitude: -6.3, Longitude: 106.8456},
		Embedding: referenceEmbedding(),
	})

	require.ErrorIs(t, err, domain.ErrOutOfRange)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "from the classroom")

	require.NotNil(t, result)
	assert.False(t, result.Proximity.Accepted)
	assert.Greater(t, float64(result.Proximity.DistanceMeters), testSession(sessionID).Geofence.RadiusMeters)
}

func TestAdmissionService_Submit_ExtractsDescriptorFromImage(t *testing.T) {
	sessionID := uuid.New()
	studentID := uuid.New()

	extractor := &fakeProvider{descriptor: &provider.Descriptor{Embedding: referenceEmbedding(), Quality: 0.9}}
	svc := NewAdmissionService(
		&fakeSessionStore{sessions: map[uuid.UUID]*domain.Session{sessionID: testSession(sessionID)}},
		&fakeAttendanceStore{},
		&fakeProfileStore{profile: &domain.ReferenceProfile{StudentID: studentID, Embedding: referenceEmbedding()}},
		extractor,
		audit.NoOpRecorder{},
		AdmissionConfig{},
	)

	result, err := svc.Submit(context.Background(), SubmitRequest{
		StudentID: studentID,
		SessionID: sessionID,
		Location:  nearbyLocation(),
		FaceImage: []byte("jpeg bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, extractor.calls)
	assert.True(t, result.Identity.IsMatch)
}

func TestAdmissionService_Submit_AlwaysAcceptPolicy(t *testing.T) {
	sessionID := uuid.New()
	studentID := uuid.New()

	farEmbedding := make([]float64, domain.EmbeddingDimension)
	farEmbedding[0] = 5

	svc := NewAdmissionService(
		&fakeSessionStore{sessions: map[uuid.UUID]*domain.Session{sessionID: testSession(sessionID)}},
		&fakeAttendanceStore{},
		&fakeProfileStore{profile: &domain.ReferenceProfile{StudentID: studentID, Embedding: referenceEmbedding()}},
		&fakeProvider{},
		audit.NoOpRecorder{},
		AdmissionConfig{Policy: facematch.PolicyAlwaysAccept},
	)

	result, err := svc.Submit(context.Background(), SubmitRequest{
		StudentID: studentID,
		SessionID: sessionID,
		Location:  nearbyLocation(),
		Embedding: farEmbedding,
	})

	require.NoError(t, err)
	assert.True(t, result.Identity.IsMatch)
	assert.Equal(t, 0.0, result.Identity.Confidence)
}

func TestAdmissionService_Submit_DayBucketUsesTimezone(t *testing.T) {
	sessionID := uuid.New()
	studentID := uuid.New()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	events := &fakeAttendanceStore{}
	svc := NewAdmissionService(
		&fakeSessionStore{sessions: map[uuid.UUID]*domain.Session{sessionID: testSession(sessionID)}},
		events,
		&fakeProfileStore{profile: &domain.ReferenceProfile{StudentID: studentID, Embedding: referenceEmbedding()}},
		&fakeProvider{},
		audit.NoOpRecorder{},
		AdmissionConfig{Timezone: jakarta},
	)
	// 23:30 UTC is already the next calendar day in Jakarta (UTC+7).
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 9, 23, 30, 0, 0, time.UTC)
	}

	result, err := svc.Submit(context.Background(), SubmitRequest{
		StudentID: studentID,
		SessionID: sessionID,
		Location:  nearbyLocation(),
		Embedding: referenceEmbedding(),
	})

	require.NoError(t, err)
	assert.Equal(t, 10, result.Event.OccurredAt.Day())
	assert.Equal(t, jakarta.String(), result.Event.OccurredAt.Location().String())
}

func TestAdmissionService_Submit_FindErrorWrapped(t *testing.T) {
	sessionID := uuid.New()

	svc := NewAdmissionService(
		&fakeSessionStore{sessions: map[uuid.UUID]*domain.Session{sessionID: testSession(sessionID)}},
		&fakeAttendanceStore{findErr: errors.New("connection refused")},
		&fakeProfileStore{},
		&fakeProvider{},
		audit.NoOpRecorder{},
		AdmissionConfig{},
	)

	_, err := svc.Submit(context.Background(), SubmitRequest{
		StudentID: uuid.New(),
		SessionID: sessionID,
		Location:  nearbyLocation(),
		Embedding: referenceEmbedding(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "check duplicate attendance")
}
