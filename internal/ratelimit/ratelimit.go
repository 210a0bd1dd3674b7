package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/presensia/presensia/internal/domain"
)

// DB is the subset of pool operations the limiter needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// SubmissionLimiter provides PostgreSQL-based sliding-window limiting of
// attendance submissions per student. Keeping the counter in the
// database makes the limit hold across API replicas.
type SubmissionLimiter struct {
	db     DB
	window time.Duration
}

func NewSubmissionLimiter(db DB, window time.Duration) *SubmissionLimiter {
	return &SubmissionLimiter{
		db:     db,
		window: window,
	}
}

// CheckSubmitLimit returns domain.ErrRateLimitExceeded when the student
// has exceeded the submission limit for the current window. A limit of
// zero or less disables limiting.
func (l *SubmissionLimiter) CheckSubmitLimit(ctx context.Context, studentID uuid.UUID, limit int) error {
	if limit <= 0 {
		return nil
	}

	now := time.Now()
	windowStart := now.Add(-l.window)
	key := submitKey(studentID)

	// ON CONFLICT atomically increments or restarts the window counter
	query := `
		WITH current_count AS (
			INSERT INTO rate_limit_counters (key, count, window_start, window_end, student_id)
			VALUES ($1, 1, $2, $3, $4)
			ON CONFLICT (key)
			DO UPDATE SET
				count = CASE
					WHEN rate_limit_counters.window_end < $2 THEN 1
					ELSE rate_limit_counters.count + 1
				END,
				window_start = CASE
					WHEN rate_limit_counters.window_end < $2 THEN $2
					ELSE rate_limit_counters.window_start
				END,
				window_end = $3
			RETURNING count
		)
		SELECT count FROM current_count
	`

	var count int
	err := l.db.QueryRow(ctx, query, key, windowStart, now, studentID).Scan(&count)
	if err != nil {
		return fmt.Errorf("check submission limit: %w", err)
	}

	if count > limit {
		return domain.ErrRateLimitExceeded
	}

	return nil
}

// CleanupExpired removes stale counters. Run periodically.
func (l *SubmissionLimiter) CleanupExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM rate_limit_counters WHERE window_end < NOW() - INTERVAL '1 hour'`
	result, err := l.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// GetCurrentCount returns the student's count in the live window.
func (l *SubmissionLimiter) GetCurrentCount(ctx context.Context, studentID uuid.UUID) (int, error) {
	windowStart := time.Now().Add(-l.window)

	query := `
		SELECT count
		FROM rate_limit_counters
		WHERE key = $1 AND window_end > $2
	`

	var count int
	err := l.db.QueryRow(ctx, query, submitKey(studentID), windowStart).Scan(&count)
	if err != nil {
		return 0, nil
	}

	return count, nil
}

// ResetLimit clears the student's counter.
func (l *SubmissionLimiter) ResetLimit(ctx context.Context, studentID uuid.UUID) error {
	query := `DELETE FROM rate_limit_counters WHERE key = $1`
	_, err := l.db.Exec(ctx, query, submitKey(studentID))
	return err
}

func submitKey(studentID uuid.UUID) string {
	return fmt.Sprintf("attendance_submit:%s", studentID)
}
