package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tasklane/chatbot/internal/flow"
	"github.com/tasklane/chatbot/internal/models"
	"github.com/tasklane/chatbot/internal/store"
)

func newTestServer() (*Server, *store.InMemoryStore) {
	st := store.NewInMemoryStore()
	return NewServer(flow.NewRouter(), nil, st), st
}

func postChat(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestChatHandlerValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid JSON", "{not json", http.StatusBadRequest},
		{"empty message", `{"message":"","user_id":"u1"}`, http.StatusBadRequest},
		{"whitespace message", `{"message":"   ","user_id":"u1"}`, http.StatusBadRequest},
		{"missing user id", `{"message":"hello"}`, http.StatusBadRequest},
		{"message too long", `{"message":"` + strings.Repeat("a", models.MaxMessageLength+1) + `","user_id":"u1"}`, http.StatusBadRequest},
		{"valid request", `{"message":"hello","user_id":"u1"}`, http.StatusOK},
	}

	s, _ := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postChat(t, s, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("POST /chat status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusBadRequest {
				var resp models.APIResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("error body is not an API response: %v", err)
				}
				if resp.Status != string(models.APIStatusError) || resp.Message == "" {
					t.Errorf("error response = %+v, want error status with message", resp)
				}
			}
		})
	}
}

func TestChatHandlerStartsCreateFlow(t *testing.T) {
	s, _ := newTestServer()
	rec := postChat(t, s, `{"message":"create a task","user_id":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /chat status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp models.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode chat response: %v", err)
	}
	if resp.Intent != flow.IntentPotentialCreate {
		t.Errorf("intent = %q, want %q", resp.Intent, flow.IntentPotentialCreate)
	}
	if !strings.Contains(resp.Reply, "[[STATE:CREATE:ASK_TITLE]]") {
		t.Errorf("reply does not carry the create marker: %q", resp.Reply)
	}
	if resp.Command == nil || resp.Command.Ready {
		t.Errorf("command = %+v, want pending create command", resp.Command)
	}
}

func TestChatHandlerRecordsExchange(t *testing.T) {
	s, st := newTestServer()
	postChat(t, s, `{"message":"hello there","user_id":"u7"}`)

	exchanges, err := st.GetExchanges()
	if err != nil {
		t.Fatalf("GetExchanges() error: %v", err)
	}
	if len(exchanges) != 1 {
		t.Fatalf("recorded %d exchanges, want 1", len(exchanges))
	}
	ex := exchanges[0]
	if !strings.HasPrefix(ex.ID, "x_") {
		t.Errorf("exchange ID = %q, want x_ prefix", ex.ID)
	}
	if ex.UserID != "u7" || ex.Message != "hello there" || ex.Reply == "" {
		t.Errorf("exchange = %+v, want populated audit record", ex)
	}
}

func TestExchangesHandler(t *testing.T) {
	s, st := newTestServer()
	st.AddExchange(models.Exchange{ID: "x_1", UserID: "u1", Time: 100})
	st.AddExchange(models.Exchange{ID: "x_2", UserID: "u2", Time: 200})

	req := httptest.NewRequest(http.MethodGet, "/exchanges?user_id=u1", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /exchanges status = %d, want 200", rec.Code)
	}
	var resp struct {
		Status string            `json:"status"`
		Result []models.Exchange `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode exchanges response: %v", err)
	}
	if resp.Status != string(models.APIStatusOK) {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if len(resp.Result) != 1 || resp.Result[0].ID != "x_1" {
		t.Errorf("result = %+v, want only u1's exchange", resp.Result)
	}
}

func TestStatsHandler(t *testing.T) {
	s, st := newTestServer()
	st.AddExchange(models.Exchange{ID: "x_1", UserID: "u1", Intent: "general", Time: 100})
	st.AddExchange(models.Exchange{ID: "x_2", UserID: "u1", Intent: "add_task", CommandReady: true, Time: 200})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /stats status = %d, want 200", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
		Result struct {
			TotalExchanges     int            `json:"total_exchanges"`
			ExchangesPerIntent map[string]int `json:"exchanges_per_intent"`
			CommandsReady      int            `json:"commands_ready"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode stats response: %v", err)
	}
	if resp.Result.TotalExchanges != 2 {
		t.Errorf("total_exchanges = %d, want 2", resp.Result.TotalExchanges)
	}
	if resp.Result.ExchangesPerIntent["add_task"] != 1 {
		t.Errorf("exchanges_per_intent = %v, want add_task counted once", resp.Result.ExchangesPerIntent)
	}
	if resp.Result.CommandsReady != 1 {
		t.Errorf("commands_ready = %d, want 1", resp.Result.CommandsReady)
	}
}

func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", rec.Code)
	}
	var health map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("health status = %v, want healthy", health["status"])
	}
}

func TestChatHandlerMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /chat status = %d, want 405", rec.Code)
	}
}
