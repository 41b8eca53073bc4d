package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

const (
	defaultMaxRetries = 10
	retryBackoff      = 2 * time.Second
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	// MaxRetries bounds the connection attempts; zero means the default.
	MaxRetries int
}

// NewPostgresDB opens a connection pool and waits for the database to
// accept pings, backing off between attempts. Cancelling the context
// aborts the wait, which matters when the server is shutting down while
// the database is still coming up.
func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 1; ; attempt++ {
		log.Printf("Connecting to database (attempt %d/%d)...", attempt, maxRetries)

		if err = db.PingContext(ctx); err == nil {
			log.Println("Database connected successfully!")
			return db, nil
		}

		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("connect to database: %w", ctx.Err())
		case <-time.After(retryBackoff):
		}
	}

	db.Close()

	return nil, fmt.Errorf("connect to database after %d attempts: %w", maxRetries, err)
}
