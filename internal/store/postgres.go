// Package store provides storage backends for the chatbot exchange log.
//
// This file implements a PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"
	"github.com/tasklane/chatbot/internal/models"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore is an exchange log backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres store ready")
	return &PostgresStore{db: db}, nil
}

// AddExchange records an exchange.
func (s *PostgresStore) AddExchange(ex models.Exchange) error {
	_, err := s.db.Exec(
		`INSERT INTO exchanges (id, user_id, message, reply, intent, command_ready, time) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ex.ID, ex.UserID, ex.Message, ex.Reply, nilIfEmpty(ex.Intent), ex.CommandReady, ex.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}
	return nil
}

// GetExchanges returns all recorded exchanges, oldest first.
func (s *PostgresStore) GetExchanges() ([]models.Exchange, error) {
	rows, err := s.db.Query(`SELECT id, user_id, message, reply, intent, command_ready, time FROM exchanges ORDER BY time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()
	return scanExchanges(rows)
}

// GetExchangesByUser returns all exchanges for one user, oldest first.
func (s *PostgresStore) GetExchangesByUser(userID string) ([]models.Exchange, error) {
	rows, err := s.db.Query(`SELECT id, user_id, message, reply, intent, command_ready, time FROM exchanges WHERE user_id = $1 ORDER BY time ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()
	return scanExchanges(rows)
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
