package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/connect-api/internal/models"
)

func TestPostgresConnectionStore_Insert(t *testing.T) {
	t.Run("inserts request and fills timestamps", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery(`INSERT INTO connection_requests`).
			WithArgs(pgxmock.AnyArg(), "user-a", "user-b", models.ConnectionStatusInterested).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		request := &models.ConnectionRequest{
			FromUserID: "user-a",
			ToUserID:   "user-b",
			Status:     models.ConnectionStatusInterested,
		}

		repo := NewPostgresConnectionStore(mock)
		require.NoError(t, repo.Insert(context.Background(), request))
		assert.NotEmpty(t, request.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair maps to ErrDuplicate", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO connection_requests`).WillReturnError(uniqueViolation())

		request := &models.ConnectionRequest{
			FromUserID: "user-b",
			ToUserID:   "user-a",
			Status:     models.ConnectionStatusIgnored,
		}

		repo := NewPostgresConnectionStore(mock)
		assert.ErrorIs(t, repo.Insert(context.Background(), request), ErrDuplicate)
	})
}

func TestPostgresConnectionStore_ExistsBetween(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "reports existing pair", exists: true},
		{name: "reports missing pair", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("user-a", "user-b").
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			repo := NewPostgresConnectionStore(mock)
			exists, err := repo.ExistsBetween(context.Background(), "user-a", "user-b")
			require.NoError(t, err)
			assert.Equal(t, tt.exists, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
