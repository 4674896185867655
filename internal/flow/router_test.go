package flow

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/tasklane/chatbot/internal/models"
)

func TestRouteActiveFlowIsNotHijacked(t *testing.T) {
	r := NewRouter()
	in := Input{
		Message: "delete task",
		UserID:  "user-1",
		History: []models.ConversationTurn{
			{Role: models.RoleUser, Content: "create a task"},
			{Role: models.RoleAssistant, Content: "What should it be called?\n[[STATE:CREATE:ASK_TITLE]]"},
		},
		Now: testNow,
	}

	res := r.Route(context.Background(), in)
	// Inside the create flow the message is a title, never a delete trigger.
	if res.Intent != IntentPotentialCreate {
		t.Fatalf("intent = %q, want %q", res.Intent, IntentPotentialCreate)
	}
	if !strings.Contains(res.Reply, `"delete task"`) {
		t.Errorf("reply does not treat the message as a title: %q", res.Reply)
	}
	wantMarker(t, res.Reply, State{Flow: FlowCreate, Substate: StateAskPriority})
}

func TestRouteIsDeterministic(t *testing.T) {
	r := NewRouter()
	in := Input{
		Message: "show my tasks",
		UserID:  "user-2",
		Tasks: []models.Task{
			{ID: "t1", Title: "write report", Priority: "high", Deadline: "2026-01-20"},
			{ID: "t2", Title: "buy milk"},
		},
		Now: testNow,
	}

	first := r.Route(context.Background(), in)
	for i := 0; i < 5; i++ {
		if got := r.Route(context.Background(), in); !reflect.DeepEqual(got, first) {
			t.Fatalf("Route() diverged on identical input:\nfirst: %+v\ngot:   %+v", first, got)
		}
	}
}

func TestRouteTerminalMarkersFallThrough(t *testing.T) {
	r := NewRouter()
	for _, marker := range []string{"[[STATE:DONE]]", "[[STATE:QUERY]]"} {
		in := Input{
			Message: "show my tasks",
			UserID:  "user-3",
			History: []models.ConversationTurn{
				{Role: models.RoleAssistant, Content: "Deleting \"old task\".\n" + marker},
			},
			Now: testNow,
		}
		res := r.Route(context.Background(), in)
		if res.Intent != IntentListTasks {
			t.Errorf("after %s: intent = %q, want fresh classification as %q", marker, res.Intent, IntentListTasks)
		}
	}
}

func TestRouteUnknownSubstateRestartsFlow(t *testing.T) {
	r := NewRouter()
	in := Input{
		Message: "anything",
		UserID:  "user-4",
		History: []models.ConversationTurn{
			{Role: models.RoleAssistant, Content: "...\n[[STATE:CREATE:ASK_COLOR]]"},
		},
		Now: testNow,
	}
	res := r.Route(context.Background(), in)
	if res.Intent != IntentPotentialCreate {
		t.Fatalf("intent = %q, want restart of the create flow", res.Intent)
	}
	wantMarker(t, res.Reply, State{Flow: FlowCreate, Substate: StateAskTitle})
}

func TestClassifyPriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"insights beats everything", "delete from my weekly summary", IntentInsights},
		{"urgency beats delete", "delete the urgent stuff", IntentListTasks},
		{"delete beats update", "delete and update it", IntentClarify},
		{"update trigger", "change something", IntentClarify},
		{"hebrew create needs verb and noun", "צור משימה חדשה", IntentPotentialCreate},
		{"english create needs task noun", "create a task", IntentPotentialCreate},
		{"create verb without noun falls through", "make it snappy", IntentGeneral},
		{"list trigger", "show my tasks", IntentListTasks},
		{"help trigger", "help", IntentHelp},
		{"no trigger", "good morning", IntentGeneral},
	}

	r := NewRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Route(context.Background(), Input{Message: tt.message, UserID: "user-5", Now: testNow})
			if res.Intent != tt.want {
				t.Errorf("Route(%q).Intent = %q, want %q", tt.message, res.Intent, tt.want)
			}
		})
	}
}

func TestResponseEnvelopeDefaults(t *testing.T) {
	res := Result{Reply: "hi", Intent: IntentGeneral}
	resp := res.Response()
	if len(resp.Suggestions) == 0 {
		t.Error("Response() dropped default suggestions for general intent")
	}

	res = Result{Reply: "hi", Intent: IntentGeneral, Suggestions: []string{"custom"}}
	resp = res.Response()
	if len(resp.Suggestions) != 1 || resp.Suggestions[0] != "custom" {
		t.Errorf("Response() suggestions = %v, want explicit ones kept", resp.Suggestions)
	}
}
