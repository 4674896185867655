// Package api provides the HTTP surface of the chatbot service.
//
// It exposes RESTful endpoints for chatting with the intent engine and for
// inspecting the recorded exchange log. The API integrates with the flow,
// genai, and store modules.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tasklane/chatbot/internal/flow"
	"github.com/tasklane/chatbot/internal/genai"
	"github.com/tasklane/chatbot/internal/store"
)

// Server timeout configuration constants.
const (
	// DefaultReadTimeout is the maximum duration for reading a request.
	DefaultReadTimeout = 15 * time.Second
	// DefaultWriteTimeout is the maximum duration before timing out a response write.
	DefaultWriteTimeout = 30 * time.Second
	// DefaultIdleTimeout is the maximum time to wait for the next request on a kept-alive connection.
	DefaultIdleTimeout = 60 * time.Second
)

// Server wires the dialogue engine, the optional reply rewriter, and the
// exchange log behind an HTTP router.
type Server struct {
	router   *flow.Router
	rewriter *genai.Rewriter
	st       store.Store
}

// NewServer creates a Server. The rewriter may be nil, in which case replies
// are returned exactly as the engine produced them.
func NewServer(router *flow.Router, rewriter *genai.Rewriter, st store.Store) *Server {
	return &Server{router: router, rewriter: rewriter, st: st}
}

// Routes builds the chi router for the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/chat", s.chatHandler)
	r.Get("/exchanges", s.exchangesHandler)
	r.Get("/stats", s.statsHandler)
	r.Get("/health", s.healthHandler)
	return r
}

// Run starts the HTTP server on addr and blocks until it exits.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
	slog.Info("Server.Run: chatbot API listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
