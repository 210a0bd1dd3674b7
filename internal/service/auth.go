package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/presensia/presensia/internal/auth"
	"github.com/presensia/presensia/internal/domain"
)

type UserStore interface {
	GetStudentByNIM(ctx context.Context, nim string) (*domain.Student, error)
	GetLecturerByCode(ctx context.Context, code string) (*domain.Lecturer, error)
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, identifier string, userType domain.UserType) (string, error)
}

// AuthService authenticates campus users and issues login tokens.
// Students identify by NIM alone; lecturers by code and password.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	audit  AuditRecorder
}

func NewAuthService(users UserStore, tokens TokenIssuer, auditRecorder AuditRecorder) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		audit:  auditRecorder,
	}
}

// LoginResult carries the issued token and the authenticated identity.
type LoginResult struct {
	Token    string          `json:"token"`
	UserID   uuid.UUID       `json:"user_id"`
	Name     string          `json:"name"`
	UserType domain.UserType `json:"user_type"`
}

// LoginStudent authenticates a student by NIM.
func (s *AuthService) LoginStudent(ctx context.Context, nim string) (*LoginResult, error) {
	if nim == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("nim is required"))
	}

	student, err := s.users.GetStudentByNIM(ctx, nim)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(student.ID, student.NIM, domain.UserStudent)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	s.audit.Record(ctx, student.ID, domain.ActivityLogin, "Student logged in")

	return &LoginResult{
		Token:    token,
		UserID:   student.ID,
		Name:     student.Name,
		UserType: domain.UserStudent,
	}, nil
}

// LoginLecturer authenticates a lecturer by code and password.
func (s *AuthService) LoginLecturer(ctx context.Context, code, password string) (*LoginResult, error) {
	if code == "" || password == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("code and password are required"))
	}

	lecturer, err := s.users.GetLecturerByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(lecturer.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(lecturer.ID, lecturer.Code, domain.UserLecturer)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	s.audit.Record(ctx, lecturer.ID, domain.ActivityLogin, "Lecturer logged in")

	return &LoginResult{
		Token:    token,
		UserID:   lecturer.ID,
		Name:     lecturer.Name,
		UserType: domain.UserLecturer,
	}, nil
}

var _ TokenIssuer = (*auth.JWTService)(nil)
