package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/presensia/internal/domain"
)

func TestSubmissionLimiter_CheckSubmitLimit(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		mockCount   int
		expectedErr error
	}{
		{
			name:      "within limit",
			limit:     10,
			mockCount: 3,
		},
		{
			name:      "at limit boundary",
			limit:     10,
			mockCount: 10,
		},
		{
			name:        "exceeds limit",
			limit:       10,
			mockCount:   11,
			expectedErr: domain.ErrRateLimitExceeded,
		},
		{
			name:      "no limit configured",
			limit:     0,
			mockCount: 1000,
		},
		{
			name:      "negative limit",
			limit:     -1,
			mockCount: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			limiter := NewSubmissionLimiter(mock, time.Minute)
			studentID := uuid.New()

			if tt.limit > 0 {
				rows := pgxmock.NewRows([]string{"count"}).AddRow(tt.mockCount)
				mock.ExpectQuery("WITH current_count AS").
					WithArgs(
						pgxmock.AnyArg(), // key
						pgxmock.AnyArg(), // window_start
						pgxmock.AnyArg(), // window_end
						studentID,
					).
					WillReturnRows(rows)
			}

			err = limiter.CheckSubmitLimit(context.Background(), studentID, tt.limit)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			if tt.limit > 0 {
				assert.NoError(t, mock.ExpectationsWereMet())
			}
		})
	}
}

func TestSubmissionLimiter_CleanupExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	limiter := NewSubmissionLimiter(mock, time.Minute)

	mock.ExpectExec("DELETE FROM rate_limit_counters").
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	deleted, err := limiter.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionLimiter_GetCurrentCount(t *testing.T) {
	tests := []struct {
		name      string
		mockCount int
		mockErr   error
		wantCount int
	}{
		{
			name:      "existing counter",
			mockCount: 15,
			wantCount: 15,
		},
		{
			name:      "no counter exists",
			mockErr:   pgx.ErrNoRows,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			limiter := NewSubmissionLimiter(mock, time.Minute)

			if tt.mockErr != nil {
				mock.ExpectQuery("SELECT count").
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnError(tt.mockErr)
			} else {
				rows := pgxmock.NewRows([]string{"count"}).AddRow(tt.mockCount)
				mock.ExpectQuery("SELECT count").
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnRows(rows)
			}

			count, err := limiter.GetCurrentCount(context.Background(), uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmissionLimiter_ResetLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	limiter := NewSubmissionLimiter(mock, time.Minute)

	mock.ExpectExec("DELETE FROM rate_limit_counters").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = limiter.ResetLimit(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
