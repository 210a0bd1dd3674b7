package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingDimension is the fixed length of all face embeddings handled
// by the system.
const EmbeddingDimension = 128

// ReferenceProfile holds the stored embedding a student's live capture
// is compared against. One per student, last write wins.
type ReferenceProfile struct {
	ID          uuid.UUID   `json:"id"`
	StudentID   uuid.UUID   `json:"student_id"`
	Embedding   []float64   `json:"-"`
	Confidence  float64     `json:"confidence"`
	Outcome     FaceOutcome `json:"outcome"`
	SampleCount int         `json:"sample_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
