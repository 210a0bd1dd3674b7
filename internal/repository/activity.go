package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/domain"
)

type ActivityLogRepository struct {
	pool PgxPool
}

func NewActivityLogRepository(pool PgxPool) *ActivityLogRepository {
	return &ActivityLogRepository{pool: pool}
}

// Insert appends one audit entry. The table is append-only; nothing in
// the pipelines reads it back.
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *domain.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_logs (id, actor_id, activity_type, details, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.ActivityType,
		entry.Details,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}

	return nil
}

func (r *ActivityLogRepository) ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, actor_id, activity_type, details, created_at
		FROM activity_logs
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ActivityLogEntry, 0)
	for rows.Next() {
		var e domain.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActivityType, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}

	return entries, nil
}
