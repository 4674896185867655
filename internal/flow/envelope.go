package flow

import "github.com/tasklane/chatbot/internal/models"

// Response assembles the outbound envelope for a routing result. When the
// result carries no explicit suggestion chips, defaults are picked by
// intent.
func (res Result) Response() models.ChatResponse {
	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = defaultSuggestions(res.Intent)
	}
	return models.ChatResponse{
		Reply:       res.Reply,
		Intent:      res.Intent,
		Suggestions: suggestions,
		Command:     res.Command,
	}
}

// defaultSuggestions maps intents to the chips the frontend shows under
// the reply.
func defaultSuggestions(intent string) []string {
	switch intent {
	case IntentGeneral, IntentHelp:
		return []string{"Create a task", "Show my tasks", "Weekly insights"}
	case IntentListTasks:
		return []string{"Create a task", "Update a task", "Delete a task"}
	case IntentInsights:
		return []string{"Show my tasks", "Create a task"}
	case IntentAddTask, IntentUpdateTask, IntentDeleteTask,
		IntentUpdateTaskCancelled, IntentDeleteTaskCancelled:
		return []string{"Show my tasks", "Weekly insights"}
	default:
		return nil
	}
}
