// Package store provides storage backends for the chatbot exchange log.
//
// This file implements an SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tasklane/chatbot/internal/models"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore is an exchange log backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given options. The
// DSN is a file path; its directory is created when missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite store ready", "dsn", dsn)
	return &SQLiteStore{db: db}, nil
}

// AddExchange records an exchange.
func (s *SQLiteStore) AddExchange(ex models.Exchange) error {
	_, err := s.db.Exec(
		`INSERT INTO exchanges (id, user_id, message, reply, intent, command_ready, time) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.UserID, ex.Message, ex.Reply, nilIfEmpty(ex.Intent), ex.CommandReady, ex.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}
	return nil
}

// GetExchanges returns all recorded exchanges, oldest first.
func (s *SQLiteStore) GetExchanges() ([]models.Exchange, error) {
	rows, err := s.db.Query(`SELECT id, user_id, message, reply, intent, command_ready, time FROM exchanges ORDER BY time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()
	return scanExchanges(rows)
}

// GetExchangesByUser returns all exchanges for one user, oldest first.
func (s *SQLiteStore) GetExchangesByUser(userID string) ([]models.Exchange, error) {
	rows, err := s.db.Query(`SELECT id, user_id, message, reply, intent, command_ready, time FROM exchanges WHERE user_id = ? ORDER BY time ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()
	return scanExchanges(rows)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
