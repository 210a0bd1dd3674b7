package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/presensia/internal/domain"
)

func TestJWTService_GenerateToken(t *testing.T) {
	service := NewJWTService("test-secret-key", "presensia-test", 1*time.Hour)

	token, err := service.GenerateToken(uuid.New(), "2110511001", domain.UserStudent)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestJWTService_ValidateToken(t *testing.T) {
	service := NewJWTService("test-secret-key", "presensia-test", 1*time.Hour)
	userID := uuid.New()

	token, err := service.GenerateToken(userID, "LEC-001", domain.UserLecturer)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "LEC-001", claims.Identifier)
	assert.Equal(t, domain.UserLecturer, claims.UserType)
	assert.Equal(t, "presensia-test", claims.Issuer)
}

func TestJWTService_ValidateToken_InvalidToken(t *testing.T) {
	service := NewJWTService("test-secret-key", "presensia-test", 1*time.Hour)

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{
			name:        "invalid token format",
			token:       "invalid.token.format",
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "empty token",
			token:       "",
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestJWTService_ValidateToken_ExpiredToken(t *testing.T) {
	service := NewJWTService("test-secret-key", "presensia-test", -1*time.Hour)

	token, err := service.GenerateToken(uuid.New(), "2110511001", domain.UserStudent)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	service := NewJWTService("secret-a", "presensia-test", 1*time.Hour)
	other := NewJWTService("secret-b", "presensia-test", 1*time.Hour)

	token, err := service.GenerateToken(uuid.New(), "2110511001", domain.UserStudent)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
