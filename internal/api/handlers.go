// Package api provides HTTP handlers for the chatbot endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tasklane/chatbot/internal/flow"
	"github.com/tasklane/chatbot/internal/models"
	"github.com/tasklane/chatbot/internal/util"
)

// chatHandler processes a single chat message (POST /chat).
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.chatHandler: processing chat request", "method", r.Method, "path", r.URL.Path)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.chatHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if err := req.Validate(); err != nil {
		slog.Warn("Server.chatHandler: validation failed", "error", err, "user_id", req.UserID)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	result := s.router.Route(r.Context(), flow.Input{
		Message: req.Message,
		UserID:  req.UserID,
		Tasks:   req.Tasks,
		Summary: req.WeeklySummary,
		History: req.ConversationHistory,
		Now:     time.Now().UTC(),
	})

	resp := result.Response()
	if s.rewriter != nil {
		resp.Reply = s.rewriter.Rewrite(r.Context(), req.Message, resp.Reply)
	}

	// Exchange logging is best-effort: a store failure must never block the reply.
	ex := models.Exchange{
		ID:           util.GenerateExchangeID(),
		UserID:       req.UserID,
		Message:      req.Message,
		Reply:        resp.Reply,
		Intent:       resp.Intent,
		CommandReady: resp.Command.Executable(),
		Time:         time.Now().Unix(),
	}
	if err := s.st.AddExchange(ex); err != nil {
		slog.Error("Server.chatHandler: failed to record exchange", "error", err, "user_id", req.UserID)
	}

	slog.Info("Server.chatHandler: reply generated", "user_id", req.UserID, "intent", resp.Intent, "command_ready", ex.CommandReady)
	writeJSONResponse(w, http.StatusOK, resp)
}

// exchangesHandler returns recorded exchanges (GET /exchanges). An optional
// user_id query parameter limits the result to one user.
func (s *Server) exchangesHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.exchangesHandler: processing exchanges request", "method", r.Method, "path", r.URL.Path)

	userID := r.URL.Query().Get("user_id")
	var (
		exchanges []models.Exchange
		err       error
	)
	if userID != "" {
		exchanges, err = s.st.GetExchangesByUser(userID)
	} else {
		exchanges, err = s.st.GetExchanges()
	}
	if err != nil {
		slog.Error("Server.exchangesHandler: failed to fetch exchanges", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch exchanges"))
		return
	}
	slog.Debug("Server.exchangesHandler: exchanges fetched", "count", len(exchanges))
	writeJSONResponse(w, http.StatusOK, models.Success(exchanges))
}

// statsHandler returns statistics about recorded exchanges (GET /stats).
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.statsHandler: processing stats request", "method", r.Method, "path", r.URL.Path)

	exchanges, err := s.st.GetExchanges()
	if err != nil {
		slog.Error("Server.statsHandler: failed to fetch exchanges", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch exchanges"))
		return
	}
	total := len(exchanges)
	perIntent := make(map[string]int)
	ready := 0
	for _, ex := range exchanges {
		if ex.Intent != "" {
			perIntent[ex.Intent]++
		}
		if ex.CommandReady {
			ready++
		}
	}
	stats := map[string]interface{}{
		"total_exchanges":      total,
		"exchanges_per_intent": perIntent,
		"commands_ready":       ready,
	}
	slog.Debug("Server.statsHandler: stats computed", "total_exchanges", total, "commands_ready", ready)
	writeJSONResponse(w, http.StatusOK, models.Success(stats))
}

// healthHandler provides a health check endpoint for monitoring and load balancing.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := s.st.GetExchanges(); err != nil {
		slog.Warn("Server.healthHandler: store check failed", "error", err)
		healthData["status"] = "degraded"
		healthData["error"] = "Failed to reach exchange store"
	}

	statusCode := http.StatusOK
	if healthData["status"] == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, statusCode, healthData)
}
