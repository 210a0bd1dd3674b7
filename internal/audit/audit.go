package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/presensia/presensia/internal/domain"
)

// ActivityStore is the append-only sink for audit entries.
type ActivityStore interface {
	Insert(ctx context.Context, entry *domain.ActivityLogEntry) error
}

// Recorder writes audit entries to the activity log and mirrors them to
// structured logging. Recording is best-effort: a failed write is
// logged and swallowed so pipelines never fail on audit.
type Recorder struct {
	store  ActivityStore
	logger *slog.Logger
}

func NewRecorder(store ActivityStore, logger *slog.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger.With("component", "audit"),
	}
}

// Record appends one activity entry for the given actor.
func (r *Recorder) Record(ctx context.Context, actorID uuid.UUID, activityType domain.ActivityType, details string) {
	entry := &domain.ActivityLogEntry{
		ActorID:      actorID,
		ActivityType: activityType,
		Details:      details,
	}

	if err := r.store.Insert(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "failed to persist audit entry",
			slog.String("error", err.Error()),
			slog.String("activity_type", string(activityType)),
			slog.String("actor_id", actorID.String()),
		)
		return
	}

	r.logger.InfoContext(ctx, "audit_event",
		slog.String("entry_id", entry.ID.String()),
		slog.String("activity_type", string(activityType)),
		slog.String("actor_id", actorID.String()),
		slog.String("details", details),
	)
}

// NoOpRecorder satisfies the pipelines' audit dependency in tests.
type NoOpRecorder struct{}

func (NoOpRecorder) Record(_ context.Context, _ uuid.UUID, _ domain.ActivityType, _ string) {}
