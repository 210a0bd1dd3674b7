package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/domain"
)

type EnrollmentRepository struct {
	pool PgxPool
}

func NewEnrollmentRepository(pool PgxPool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Enroll links a student to a session. Re-enrolling is a no-op.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, sessionID uuid.UUID) error {
	query := `
		INSERT INTO enrollments (student_id, session_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (student_id, session_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, studentID, sessionID); err != nil {
		return fmt.Errorf("enroll student: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Enrollment, error) {
	query := `
		SELECT student_id, session_id, created_at
		FROM enrollments
		WHERE student_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]domain.Enrollment, 0)
	for rows.Next() {
		var e domain.Enrollment
		if err := rows.Scan(&e.StudentID, &e.SessionID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}

	return enrollments, nil
}
