package flow

import (
	"strings"

	"github.com/tasklane/chatbot/internal/lexicon"
)

// ParsePriority resolves a user message to a canonical priority value
// (low/medium/high/urgent). Unmatched input reports false and the caller
// re-prompts.
func ParsePriority(raw string) (string, bool) {
	return lexicon.CanonicalPriority(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseStatus resolves a user message to a canonical status value
// (open/in_progress/done).
func ParseStatus(raw string) (string, bool) {
	return lexicon.CanonicalStatus(normalizeTitle(raw))
}

// priorityLabel renders a canonical priority with its Hebrew equivalent so
// replies read naturally in both locales.
func priorityLabel(canonical string) string {
	if he, ok := lexicon.HebrewPriorityLabels[canonical]; ok {
		return canonical + " (" + he + ")"
	}
	return canonical
}
