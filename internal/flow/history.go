package flow

import (
	"strings"

	"github.com/tasklane/chatbot/internal/models"
)

// History recovery helpers. The engine keeps no state between calls, so
// prior slot values are re-derived by locating the assistant turn that
// carried a given marker and replaying the user's reply to it. The scan
// always runs newest to oldest: the nearest matching marker wins.

// turnHasMarker reports whether the turn content carries a marker for the
// given flow and one of the substates. An empty substate list matches any
// substate of the flow.
func turnHasMarker(content string, fl Flow, substates ...string) (State, bool) {
	for _, raw := range markerPattern.FindAllString(content, -1) {
		st, ok := ParseMarker(raw)
		if !ok || st.Flow != fl {
			continue
		}
		if len(substates) == 0 {
			return st, true
		}
		for _, sub := range substates {
			if st.Substate == sub {
				return st, true
			}
		}
	}
	return State{}, false
}

// userReplyAfterMarker returns the first user message following the most
// recent assistant turn whose content carries a marker with the given
// flow and substate.
func userReplyAfterMarker(history []models.ConversationTurn, fl Flow, substate string) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != models.RoleAssistant {
			continue
		}
		if _, ok := turnHasMarker(history[i].Content, fl, substate); !ok {
			continue
		}
		for j := i + 1; j < len(history); j++ {
			if history[j].Role == models.RoleUser {
				return history[j].Content, true
			}
		}
		return "", false
	}
	return "", false
}

// valueMarkerReply locates the most recent ASK_VALUE marker of the given
// flow and returns the field it carried as its param together with the
// user reply that followed it.
func valueMarkerReply(history []models.ConversationTurn, fl Flow) (field, reply string, ok bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != models.RoleAssistant {
			continue
		}
		st, found := turnHasMarker(history[i].Content, fl, StateAskValue)
		if !found {
			continue
		}
		for j := i + 1; j < len(history); j++ {
			if history[j].Role == models.RoleUser {
				return st.Param, history[j].Content, true
			}
		}
		return "", "", false
	}
	return "", "", false
}

// userMessageBeforeMarker returns the user message that triggered the most
// recent assistant turn carrying any of the given markers, i.e. the user
// turn immediately preceding it.
func userMessageBeforeMarker(history []models.ConversationTurn, fl Flow, substates ...string) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != models.RoleAssistant {
			continue
		}
		if _, ok := turnHasMarker(history[i].Content, fl, substates...); !ok {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if history[j].Role == models.RoleUser {
				return history[j].Content, true
			}
		}
		return "", false
	}
	return "", false
}

// taskMentionedNearMarker scans newest to oldest for assistant turns
// carrying any of the given markers and returns the known task whose
// normalized title is mentioned in such a turn. On overlapping titles the
// longest match wins. Falls back to the single task when the caller has
// exactly one.
func taskMentionedNearMarker(history []models.ConversationTurn, tasks []models.Task, fl Flow, substates ...string) (models.Task, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != models.RoleAssistant {
			continue
		}
		if _, ok := turnHasMarker(history[i].Content, fl, substates...); !ok {
			continue
		}
		content := normalizeTitle(history[i].Content)
		var best models.Task
		found := false
		for _, t := range tasks {
			nt := normalizeTitle(t.Title)
			if nt != "" && strings.Contains(content, nt) && len(nt) > len(normalizeTitle(best.Title)) {
				best = t
				found = true
			}
		}
		if found {
			return best, true
		}
	}
	if len(tasks) == 1 {
		return tasks[0], true
	}
	return models.Task{}, false
}
