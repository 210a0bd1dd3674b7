package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType classifies an audit log entry.
type ActivityType string

const (
	ActivityLogin            ActivityType = "Login"
	ActivityAttendance       ActivityType = "Attendance"
	ActivityClassAdded       ActivityType = "ClassAdded"
	ActivityExportData       ActivityType = "ExportData"
	ActivityFaceRegistration ActivityType = "FaceRegistration"
)

// ActivityLogEntry is an append-only audit record. Entries are written
// as side effects of the pipelines and never read back by them.
type ActivityLogEntry struct {
	ID           uuid.UUID    `json:"id"`
	ActorID      uuid.UUID    `json:"actor_id"`
	ActivityType ActivityType `json:"activity_type"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
