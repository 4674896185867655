package flow

import (
	"testing"

	"github.com/tasklane/chatbot/internal/models"
)

func TestFindCandidates(t *testing.T) {
	tasks := []models.Task{
		{ID: "abc123", Title: "Write report"},
		{ID: "def456", Title: "Buy groceries"},
		{ID: "ghi789", Title: "Report bug to vendor"},
	}

	tests := []struct {
		name    string
		message string
		wantIDs []string
	}{
		{"bare id", "please delete abc123", []string{"abc123"}},
		{"task id phrase", "delete task def456", []string{"def456"}},
		{"hebrew task id phrase", "מחק משימה ghi789", []string{"ghi789"}},
		{"title substring", "delete the write report task", []string{"abc123"}},
		{"partial title is not enough", "something about report", []string{}},
		{"no match", "delete the laundry", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCandidates(tasks, tt.message)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FindCandidates(%q) returned %d tasks, want %d", tt.message, len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("FindCandidates(%q)[%d].ID = %q, want %q", tt.message, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFindCandidatesIDPrecedence(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "report"},
		{ID: "t2", Title: "review"},
	}
	// Both the ID of one task and the title of another appear; the ID pass
	// wins and the title match is discarded.
	got := FindCandidates(tasks, "delete t2 report")
	if len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("FindCandidates() = %v, want only the ID match t2", got)
	}
}
