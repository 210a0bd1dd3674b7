package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/presensia/presensia/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Insert writes a new attendance event. The attended_on column carries
// the calendar day in the server's reference timezone; its unique index
// with (student_id, session_id) makes concurrent duplicate submissions
// lose the race deterministically.
func (r *AttendanceRepository) Insert(ctx context.Context, event *domain.AttendanceEvent, attendedOn time.Time) error {
	query := `
		INSERT INTO attendance_events (id, student_id, session_id, status, latitude, longitude, face_outcome, occurred_at, attended_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		event.ID,
		event.StudentID,
		event.SessionID,
		event.Status,
		event.Location.Latitude,
		event.Location.Longitude,
		event.FaceOutcome,
		event.OccurredAt,
		attendedOn,
	).Scan(&event.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMarked
		}
		return fmt.Errorf("insert attendance event: %w", err)
	}

	return nil
}

// FindForDay returns the event for (student, session, day), or nil when
// none exists.
func (r *AttendanceRepository) FindForDay(ctx context.Context, studentID, sessionID uuid.UUID, attendedOn time.Time) (*domain.AttendanceEvent, error) {
	query := `
		SELECT id, student_id, session_id, status, latitude, longitude, face_outcome, occurred_at, created_at
		FROM attendance_events
		WHERE student_id = $1 AND session_id = $2 AND attended_on = $3
	`

	event, err := scanAttendanceEvent(r.pool.QueryRow(ctx, query, studentID, sessionID, attendedOn))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance for day: %w", err)
	}

	return event, nil
}

// ListFilter narrows List results; zero values mean no filtering.
type ListFilter struct {
	StudentID uuid.UUID
	SessionID uuid.UUID
}

func (r *AttendanceRepository) List(ctx context.Context, filter ListFilter) ([]domain.AttendanceEvent, error) {
	query := `
		SELECT id, student_id, session_id, status, latitude, longitude, face_outcome, occurred_at, created_at
		FROM attendance_events
		WHERE ($1::uuid IS NULL OR student_id = $1)
		  AND ($2::uuid IS NULL OR session_id = $2)
		ORDER BY occurred_at DESC
	`

	rows, err := r.pool.Query(ctx, query, nullableUUID(filter.StudentID), nullableUUID(filter.SessionID))
	if err != nil {
		return nil, fmt.Errorf("list attendance events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.AttendanceEvent, 0)
	for rows.Next() {
		event, err := scanAttendanceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance events: %w", err)
	}

	return events, nil
}

func scanAttendanceEvent(row pgx.Row) (*domain.AttendanceEvent, error) {
	var e domain.AttendanceEvent
	err := row.Scan(
		&e.ID,
		&e.StudentID,
		&e.SessionID,
		&e.Status,
		&e.Location.Latitude,
		&e.Location.Longitude,
		&e.FaceOutcome,
		&e.OccurredAt,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
