package flow

import (
	"strings"

	"github.com/tasklane/chatbot/internal/lexicon"
	"github.com/tasklane/chatbot/internal/models"
)

// FindCandidates resolves a user utterance against the task list.
//
// Pass 1 collects tasks whose ID appears in the message (bare, or inside
// "task <id>" / Hebrew equivalents). Only if no ID matches does pass 2
// collect tasks whose normalized title appears as a substring of the
// normalized message. ID matches take strict precedence; the two passes
// are never mixed.
func FindCandidates(tasks []models.Task, message string) []models.Task {
	lower := strings.ToLower(message)

	var byID []models.Task
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		id := strings.ToLower(t.ID)
		if strings.Contains(lower, "task "+id) ||
			strings.Contains(lower, lexicon.HebrewTaskWord+" "+id) ||
			strings.Contains(lower, id) {
			byID = append(byID, t)
		}
	}
	if len(byID) > 0 {
		return byID
	}

	normMsg := normalizeTitle(message)
	var byTitle []models.Task
	for _, t := range tasks {
		nt := normalizeTitle(t.Title)
		if nt != "" && strings.Contains(normMsg, nt) {
			byTitle = append(byTitle, t)
		}
	}
	return byTitle
}
