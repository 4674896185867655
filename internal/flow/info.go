package flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/tasklane/chatbot/internal/models"
)

// Stateless informational handlers. None of them emits a marker: they
// answer and leave the conversation without an active flow.

// upcomingWindow is how far ahead a deadline still counts as urgent.
const upcomingWindow = 3 * 24 * time.Hour

func insightsResult(in Input) Result {
	if in.Summary == nil {
		return Result{
			Reply:  "I don't have your weekly summary yet. Check back once you've worked on a few tasks!",
			Intent: IntentInsights,
		}
	}
	s := in.Summary
	reply := fmt.Sprintf(
		"Here's your week:\n- Completed: %d\n- High priority: %d\n- Upcoming: %d\n- Overdue: %d",
		s.Completed.Count, s.HighPriority.Count, s.Upcoming.Count, s.Overdue.Count)
	if s.Overdue.Count > 0 {
		reply += "\nThe overdue ones could use some attention first."
	}
	return Result{Reply: reply, Intent: IntentInsights}
}

func urgentResult(in Input) Result {
	var lines []string
	for _, t := range in.Tasks {
		if t.Status == "done" {
			continue
		}
		if t.Priority == "high" || t.Priority == "urgent" || deadlineSoon(t.Deadline, in.Now) {
			lines = append(lines, taskLine(t))
		}
	}
	if len(lines) == 0 {
		return Result{
			Reply:   "Nothing looks urgent right now - nice work!",
			Intent:  IntentListTasks,
			Command: listCommand(map[string]any{"urgent": true}, 0.9),
		}
	}
	reply := "These need attention soon:\n" + strings.Join(lines, "\n")
	return Result{
		Reply:   reply,
		Intent:  IntentListTasks,
		Command: listCommand(map[string]any{"urgent": true}, 0.9),
	}
}

func listResult(in Input) Result {
	if len(in.Tasks) == 0 {
		return Result{
			Reply:   "Your task list is empty. Want to create one?",
			Intent:  IntentListTasks,
			Command: listCommand(nil, 0.9),
		}
	}
	var lines []string
	for i, t := range in.Tasks {
		if i == 10 {
			lines = append(lines, fmt.Sprintf("...and %d more.", len(in.Tasks)-10))
			break
		}
		lines = append(lines, taskLine(t))
	}
	return Result{
		Reply:   fmt.Sprintf("You have %d tasks:\n%s", len(in.Tasks), strings.Join(lines, "\n")),
		Intent:  IntentListTasks,
		Command: listCommand(nil, 0.9),
	}
}

func helpResult(_ Input) Result {
	reply := "Here's what I can do:\n" +
		"- Create a task (\"create a task\")\n" +
		"- Update a task (\"update task\", \"change priority\")\n" +
		"- Delete a task (\"delete task\")\n" +
		"- Show your tasks (\"show my tasks\")\n" +
		"- Weekly insights (\"show my summary\")\n" +
		"I understand English and Hebrew."
	return Result{Reply: reply, Intent: IntentHelp}
}

func generalResult(in Input) Result {
	return Result{
		Reply:  SelectVariant(in.UserID, generalVariants),
		Intent: IntentGeneral,
	}
}

func taskLine(t models.Task) string {
	line := "- " + t.Title
	var extras []string
	if t.Priority != "" {
		extras = append(extras, t.Priority)
	}
	if t.Deadline != "" {
		extras = append(extras, "due "+t.Deadline)
	}
	if len(extras) > 0 {
		line += " (" + strings.Join(extras, ", ") + ")"
	}
	return line
}

// deadlineSoon reports whether the deadline string parses and falls
// within the upcoming window (or is already past).
func deadlineSoon(deadline string, now time.Time) bool {
	if deadline == "" {
		return false
	}
	t, err := time.Parse("2006-01-02", deadline)
	if err != nil {
		t, err = time.Parse(time.RFC3339, deadline)
		if err != nil {
			return false
		}
	}
	return t.Before(now.Add(upcomingWindow))
}
