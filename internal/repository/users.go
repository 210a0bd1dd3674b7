package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/presensia/presensia/internal/domain"
)

type UserRepository struct {
	pool PgxPool
}

func NewUserRepository(pool PgxPool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	query := `
		SELECT id, nim, name, email, program_study, created_at
		FROM students
		WHERE id = $1
	`

	return r.scanStudent(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetStudentByNIM(ctx context.Context, nim string) (*domain.Student, error) {
	query := `
		SELECT id, nim, name, email, program_study, created_at
		FROM students
		WHERE nim = $1
	`

	return r.scanStudent(r.pool.QueryRow(ctx, query, nim))
}

func (r *UserRepository) GetLecturerByCode(ctx context.Context, code string) (*domain.Lecturer, error) {
	query := `
		SELECT id, code, name, password_hash, created_at
		FROM lecturers
		WHERE code = $1
	`

	var l domain.Lecturer
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&l.ID,
		&l.Code,
		&l.Name,
		&l.PasswordHash,
		&l.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get lecturer by code: %w", err)
	}

	return &l, nil
}

func (r *UserRepository) scanStudent(row pgx.Row) (*domain.Student, error) {
	var s domain.Student
	err := row.Scan(
		&s.ID,
		&s.NIM,
		&s.Name,
		&s.Email,
		&s.ProgramStudy,
		&s.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}

	return &s, nil
}
