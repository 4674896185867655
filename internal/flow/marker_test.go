package flow

import (
	"testing"

	"github.com/tasklane/chatbot/internal/models"
)

func TestMarkerRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{
			name:  "flow only",
			state: State{Flow: FlowDone},
			want:  "[[STATE:DONE]]",
		},
		{
			name:  "flow and substate",
			state: State{Flow: FlowCreate, Substate: StateAskTitle},
			want:  "[[STATE:CREATE:ASK_TITLE]]",
		},
		{
			name:  "flow, substate and param",
			state: State{Flow: FlowUpdate, Substate: StateAskValue, Param: "priority"},
			want:  "[[STATE:UPDATE:ASK_VALUE:priority]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.Marker()
			if got != tt.want {
				t.Fatalf("Marker() = %q, want %q", got, tt.want)
			}
			parsed, ok := ParseMarker(got)
			if !ok {
				t.Fatalf("ParseMarker(%q) failed", got)
			}
			if parsed != tt.state {
				t.Errorf("ParseMarker(%q) = %+v, want %+v", got, parsed, tt.state)
			}
		})
	}
}

func TestParseMarkerMalformed(t *testing.T) {
	tests := []string{
		"",
		"[[STATE:]]",
		"[[STATE:PURGE]]",
		"[STATE:CREATE]",
		"plain text without a marker",
	}

	for _, raw := range tests {
		if _, ok := ParseMarker(raw); ok {
			t.Errorf("ParseMarker(%q) = ok, want failure", raw)
		}
	}
}

func TestExtractLastMarker(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleAssistant, Content: "Which task?\n[[STATE:DELETE:IDENTIFY_TASK]]"},
		{Role: models.RoleUser, Content: "the report one"},
		{Role: models.RoleAssistant, Content: "Delete it?\n[[STATE:DELETE:ASK_CONFIRMATION]]"},
		{Role: models.RoleUser, Content: "hmm [[STATE:CREATE:ASK_TITLE]] pasted by accident"},
	}

	raw, ok := ExtractLastMarker(history)
	if !ok {
		t.Fatal("ExtractLastMarker() found no marker")
	}
	// User turns never carry authoritative markers.
	if raw != "[[STATE:DELETE:ASK_CONFIRMATION]]" {
		t.Errorf("ExtractLastMarker() = %q, want delete confirmation marker", raw)
	}
}

func TestExtractLastMarkerPicksLastInTurn(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleAssistant, Content: "[[STATE:CREATE:ASK_TITLE]] then [[STATE:CREATE:ASK_PRIORITY]]"},
	}
	raw, ok := ExtractLastMarker(history)
	if !ok {
		t.Fatal("ExtractLastMarker() found no marker")
	}
	if raw != "[[STATE:CREATE:ASK_PRIORITY]]" {
		t.Errorf("ExtractLastMarker() = %q, want last marker in turn", raw)
	}
}

func TestExtractLastMarkerNone(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi there"},
	}
	if _, ok := ExtractLastMarker(history); ok {
		t.Error("ExtractLastMarker() = ok on markerless history")
	}
}

func TestStripMarkers(t *testing.T) {
	in := "Sure thing!\n[[STATE:CREATE:ASK_TITLE]]"
	if got := StripMarkers(in); got != "Sure thing!" {
		t.Errorf("StripMarkers() = %q, want %q", got, "Sure thing!")
	}
}

func TestSplitMarker(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantText   string
		wantMarker string
	}{
		{
			name:       "reply with marker",
			reply:      "What should it be called?\n[[STATE:CREATE:ASK_TITLE]]",
			wantText:   "What should it be called?",
			wantMarker: "[[STATE:CREATE:ASK_TITLE]]",
		},
		{
			name:       "reply without marker",
			reply:      "All done.",
			wantText:   "All done.",
			wantMarker: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, marker := SplitMarker(tt.reply)
			if text != tt.wantText || marker != tt.wantMarker {
				t.Errorf("SplitMarker() = (%q, %q), want (%q, %q)", text, marker, tt.wantText, tt.wantMarker)
			}
		})
	}
}
