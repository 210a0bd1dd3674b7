package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus is the recorded presence state of a student.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLate    AttendanceStatus = "Late"
)

// FaceOutcome is the identity-check result attached to an event.
type FaceOutcome string

const (
	FaceMatched   FaceOutcome = "Matched"
	FaceUnmatched FaceOutcome = "Unmatched"
	FacePending   FaceOutcome = "Pending"
)

// Location is the sampled point a student submitted, not the fence.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AttendanceEvent is one accepted attendance submission. Events are
// immutable once written; at most one exists per student, session and
// calendar day.
type AttendanceEvent struct {
	ID          uuid.UUID        `json:"id"`
	StudentID   uuid.UUID        `json:"student_id"`
	SessionID   uuid.UUID        `json:"session_id"`
	Status      AttendanceStatus `json:"status"`
	Location    Location         `json:"location"`
	FaceOutcome FaceOutcome      `json:"face_outcome"`
	OccurredAt  time.Time        `json:"occurred_at"`
	CreatedAt   time.Time        `json:"created_at"`
}
