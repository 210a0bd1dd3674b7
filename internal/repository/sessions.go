package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/presensia/presensia/internal/domain"
)

type SessionRepository struct {
	pool PgxPool
}

func NewSessionRepository(pool PgxPool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, code, name, schedule, lecturer_id, latitude, longitude, radius_meters, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.Code,
		session.Name,
		session.Schedule,
		session.LecturerID,
		session.Geofence.Latitude,
		session.Geofence.Longitude,
		session.Geofence.RadiusMeters,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionCodeExists
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := `
		SELECT id, code, name, schedule, lecturer_id, latitude, longitude, radius_meters, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	session, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return session, nil
}

func (r *SessionRepository) ListAll(ctx context.Context) ([]domain.Session, error) {
	query := `
		SELECT id, code, name, schedule, lecturer_id, latitude, longitude, radius_meters, created_at, updated_at
		FROM sessions
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func (r *SessionRepository) ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]domain.Session, error) {
	query := `
		SELECT id, code, name, schedule, lecturer_id, latitude, longitude, radius_meters, created_at, updated_at
		FROM sessions
		WHERE lecturer_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, lecturerID)
	if err != nil {
		return nil, fmt.Errorf("list sessions by lecturer: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func (r *SessionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Session, error) {
	query := `
		SELECT s.id, s.code, s.name, s.schedule, s.lecturer_id, s.latitude, s.longitude, s.radius_meters, s.created_at, s.updated_at
		FROM sessions s
		INNER JOIN enrollments e ON e.session_id = s.id
		WHERE e.student_id = $1
		ORDER BY s.created_at
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list sessions by student: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&s.Schedule,
		&s.LecturerID,
		&s.Geofence.Latitude,
		&s.Geofence.Longitude,
		&s.Geofence.RadiusMeters,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSessions(rows pgx.Rows) ([]domain.Session, error) {
	sessions := make([]domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
