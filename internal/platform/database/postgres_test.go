package database_test

import (
	"context"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nokras/hotel-booking/internal/platform/database"
)

func TestNewPostgresDB_CancelledContextAbortsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := database.Config{
		Host:       "127.0.0.1",
		Port:       "1", // nothing listens here
		User:       "postgres",
		DBName:     "hotel_booking",
		MaxRetries: 3,
	}

	db, err := database.NewPostgresDB(ctx, cfg)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.ErrorIs(t, err, context.Canceled)
}
