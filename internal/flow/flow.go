// Package flow implements the deterministic conversational engine of the
// TaskLane chatbot: a text-driven set of state machines that turn multi-turn
// natural-language conversations (English/Hebrew) into structured
// task-management commands.
//
// The engine is stateless across calls. Everything it needs is re-derived
// from the caller-supplied conversation history by scanning for the latest
// state marker embedded in prior assistant replies.
package flow

import (
	"time"

	"github.com/tasklane/chatbot/internal/models"
)

// Input carries everything a single engine invocation may read. The engine
// never mutates any of it.
type Input struct {
	Message string
	UserID  string
	Tasks   []models.Task
	Summary *models.WeeklySummary
	History []models.ConversationTurn
	Now     time.Time
}

// Result is the outcome of one engine invocation: the reply to show the
// user (with an embedded state marker when a flow stays active), the
// UI-facing intent label, suggestion chips, and the structured command.
type Result struct {
	Reply       string
	Intent      string
	Suggestions []string
	Command     *models.Command
}

// UI-facing intent labels.
const (
	IntentPotentialCreate     = "potential_create"
	IntentPotentialUpdate     = "potential_update"
	IntentPotentialDelete     = "potential_delete"
	IntentClarify             = "clarify"
	IntentAddTask             = models.CommandAddTask
	IntentUpdateTask          = models.CommandUpdateTask
	IntentDeleteTask          = models.CommandDeleteTask
	IntentUpdateTaskCancelled = "update_task_cancelled"
	IntentDeleteTaskCancelled = "delete_task_cancelled"
	IntentListTasks           = models.CommandListTasks
	IntentInsights            = "insights"
	IntentHelp                = "help"
	IntentGeneral             = "general"
)
