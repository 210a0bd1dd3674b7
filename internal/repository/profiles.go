package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/presensia/presensia/internal/domain"
)

type ProfileRepository struct {
	pool PgxPool
}

func NewProfileRepository(pool PgxPool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Upsert stores the student's reference profile, overwriting any
// previous one. Last write wins, no history.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.ReferenceProfile) error {
	query := `
		INSERT INTO reference_profiles (id, student_id, embedding, confidence, outcome, sample_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (student_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			confidence = EXCLUDED.confidence,
			outcome = EXCLUDED.outcome,
			sample_count = EXCLUDED.sample_count,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.StudentID,
		toVector(profile.Embedding),
		profile.Confidence,
		profile.Outcome,
		profile.SampleCount,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert reference profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) GetByStudent(ctx context.Context, studentID uuid.UUID) (*domain.ReferenceProfile, error) {
	query := `
		SELECT id, student_id, embedding, confidence, outcome, sample_count, created_at, updated_at
		FROM reference_profiles
		WHERE student_id = $1
	`

	var profile domain.ReferenceProfile
	var embedding *pgvector.Vector

	err := r.pool.QueryRow(ctx, query, studentID).Scan(
		&profile.ID,
		&profile.StudentID,
		&embedding,
		&profile.Confidence,
		&profile.Outcome,
		&profile.SampleCount,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reference profile: %w", err)
	}

	profile.Embedding = fromVector(embedding)

	return &profile, nil
}

func toVector(embedding []float64) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	vec := pgvector.NewVector(floats)
	return &vec
}

func fromVector(vec *pgvector.Vector) []float64 {
	if vec == nil || vec.Slice() == nil {
		return nil
	}
	embedding := make([]float64, len(vec.Slice()))
	for i, v := range vec.Slice() {
		embedding[i] = float64(v)
	}
	return embedding
}
