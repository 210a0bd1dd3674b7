package domain

import (
	"time"

	"github.com/google/uuid"
)

// Geofence is the acceptance region for location checks: a center
// coordinate plus a radius in meters.
type Geofence struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// Session is a scheduled class meeting a student can attend.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Schedule   string    `json:"schedule"`
	LecturerID uuid.UUID `json:"lecturer_id"`
	Geofence   Geofence  `json:"geofence"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Enrollment links a student to a session they may attend.
type Enrollment struct {
	StudentID uuid.UUID `json:"student_id"`
	SessionID uuid.UUID `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
