package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserType distinguishes the two campus roles.
type UserType string

const (
	UserStudent  UserType = "student"
	UserLecturer UserType = "lecturer"
)

// Student is a campus user identified by their NIM (student number).
type Student struct {
	ID           uuid.UUID `json:"id"`
	NIM          string    `json:"nim"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProgramStudy string    `json:"program_study"`
	CreatedAt    time.Time `json:"created_at"`
}

// Lecturer authenticates with a code and password and owns sessions.
type Lecturer struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
