// Package store provides storage backends for the chatbot exchange log.
//
// Exchanges are audit records of processed chat turns, consumed by the
// core API's insights aggregation. They are never session state: the
// engine derives all conversational state from the caller-supplied
// history, not from this store.
package store

import (
	"sort"
	"sync"

	"github.com/tasklane/chatbot/internal/models"
)

// Store is the interface all exchange-log backends implement.
type Store interface {
	// AddExchange records a processed chat exchange.
	AddExchange(ex models.Exchange) error
	// GetExchanges returns all recorded exchanges, oldest first.
	GetExchanges() ([]models.Exchange, error)
	// GetExchangesByUser returns all exchanges for one user, oldest first.
	GetExchangesByUser(userID string) ([]models.Exchange, error)
	// Close releases backend resources.
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option configures store creation.
type Option func(*Opts)

// WithDSN sets the database DSN (file path for SQLite, URL for Postgres).
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// InMemoryStore is a simple in-memory exchange log, used as the default
// backend and in tests.
type InMemoryStore struct {
	mu        sync.RWMutex
	exchanges []models.Exchange
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// AddExchange records an exchange.
func (s *InMemoryStore) AddExchange(ex models.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, ex)
	return nil
}

// GetExchanges returns all recorded exchanges, oldest first.
func (s *InMemoryStore) GetExchanges() ([]models.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// GetExchangesByUser returns all exchanges for one user, oldest first.
func (s *InMemoryStore) GetExchangesByUser(userID string) ([]models.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Exchange
	for _, ex := range s.exchanges {
		if ex.UserID == userID {
			out = append(out, ex)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
