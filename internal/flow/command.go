package flow

import "github.com/tasklane/chatbot/internal/models"

// Command builders. The underlying Command.Intent is always the mutation
// intent of the owning flow; the UI-facing label in Result.Intent varies
// by step.

func createCommand(fields map[string]any, ready bool, confidence float64, missing []string) *models.Command {
	return &models.Command{
		Intent:        models.CommandAddTask,
		Confidence:    confidence,
		Fields:        fields,
		Ready:         ready,
		MissingFields: missing,
	}
}

func deleteCommand(ref *models.TaskRef, ready bool, confidence float64, missing []string) *models.Command {
	return &models.Command{
		Intent:        models.CommandDeleteTask,
		Confidence:    confidence,
		Ref:           ref,
		Ready:         ready,
		MissingFields: missing,
	}
}

func updateCommand(ref *models.TaskRef, fields map[string]any, ready bool, confidence float64, missing []string) *models.Command {
	return &models.Command{
		Intent:        models.CommandUpdateTask,
		Confidence:    confidence,
		Ref:           ref,
		Fields:        fields,
		Ready:         ready,
		MissingFields: missing,
	}
}

func listCommand(filter map[string]any, confidence float64) *models.Command {
	return &models.Command{
		Intent:     models.CommandListTasks,
		Confidence: confidence,
		Filter:     filter,
	}
}

// refFor builds a TaskRef preferring the task ID over the title.
func refFor(t models.Task) *models.TaskRef {
	if t.ID != "" {
		return &models.TaskRef{TaskID: t.ID}
	}
	return &models.TaskRef{Title: t.Title}
}
