package flow

import (
	"regexp"
	"strings"

	"github.com/tasklane/chatbot/internal/models"
)

// Flow identifies one of the conversation scripts a marker can belong to.
type Flow string

const (
	FlowCreate Flow = "CREATE"
	FlowDelete Flow = "DELETE"
	FlowUpdate Flow = "UPDATE"
	FlowQuery  Flow = "QUERY"
	FlowDone   Flow = "DONE"
)

// Sub-state names shared by the flow state machines.
const (
	StateAskTitle        = "ASK_TITLE"
	StateAskPriority     = "ASK_PRIORITY"
	StateAskDeadline     = "ASK_DEADLINE"
	StateIdentifyTask    = "IDENTIFY_TASK"
	StateSelectTask      = "SELECT_TASK"
	StateAskField        = "ASK_FIELD"
	StateAskValue        = "ASK_VALUE"
	StateAskConfirmation = "ASK_CONFIRMATION"
)

// markerPattern is the wire grammar of a state marker embedded in a reply.
var markerPattern = regexp.MustCompile(`\[\[STATE:(CREATE|DELETE|UPDATE|QUERY|DONE)(?::([A-Z_]+))?(?::([a-zA-Z_]+))?\]\]`)

// State is the decoded form of a marker. The marker text is merely its
// serialized wire form at the boundary with the caller.
type State struct {
	Flow     Flow
	Substate string
	Param    string
}

// Marker serializes the state into its wire form.
func (s State) Marker() string {
	var b strings.Builder
	b.WriteString("[[STATE:")
	b.WriteString(string(s.Flow))
	if s.Substate != "" {
		b.WriteString(":")
		b.WriteString(s.Substate)
	}
	if s.Param != "" {
		b.WriteString(":")
		b.WriteString(s.Param)
	}
	b.WriteString("]]")
	return b.String()
}

// ParseMarker decodes a single marker string. Malformed markers report
// false; callers fall back to their flow's default initial sub-state.
func ParseMarker(raw string) (State, bool) {
	m := markerPattern.FindStringSubmatch(raw)
	if m == nil {
		return State{}, false
	}
	return State{Flow: Flow(m[1]), Substate: m[2], Param: m[3]}, true
}

// ExtractLastMarker scans the history newest to oldest and returns the
// authoritative marker: the last occurrence within the most recent
// assistant turn that contains any marker.
func ExtractLastMarker(history []models.ConversationTurn) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != models.RoleAssistant {
			continue
		}
		found := markerPattern.FindAllString(history[i].Content, -1)
		if len(found) > 0 {
			return found[len(found)-1], true
		}
	}
	return "", false
}

// AppendMarker attaches the state marker as the final line of a reply.
// Replies produced by the engine carry at most one marker.
func AppendMarker(reply string, s State) string {
	return reply + "\n" + s.Marker()
}

// StripMarkers removes every marker from the text. Used to sanitize
// LLM-rewritten replies before the original marker is re-attached.
func StripMarkers(s string) string {
	return strings.TrimSpace(markerPattern.ReplaceAllString(s, ""))
}

// SplitMarker separates a reply into its natural-language text and its
// trailing marker (empty when the reply carries none). Used by the LLM
// rewriter, which may touch only the text.
func SplitMarker(reply string) (text, marker string) {
	loc := markerPattern.FindAllStringIndex(reply, -1)
	if len(loc) == 0 {
		return reply, ""
	}
	last := loc[len(loc)-1]
	marker = reply[last[0]:last[1]]
	text = strings.TrimRight(reply[:last[0]], "\n ")
	return text, marker
}
