package flow

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tasklane/chatbot/internal/lexicon"
	"github.com/tasklane/chatbot/internal/models"
)

// maxCandidates caps how many tasks a disambiguation list shows.
const maxCandidates = 5

// DeleteFlow resolves which task to delete, then requires an explicit
// confirmation before the command ever becomes ready.
type DeleteFlow struct{}

// Start enters the flow from router classification.
func (f *DeleteFlow) Start(in Input) Result {
	slog.Debug("DeleteFlow.Start: entering delete flow", "userID", in.UserID, "tasks", len(in.Tasks))
	return f.identify(in)
}

// Resume re-enters the flow at the sub-state recorded in the marker.
// Unknown sub-states fall back to IDENTIFY_TASK.
func (f *DeleteFlow) Resume(st State, in Input) Result {
	slog.Debug("DeleteFlow.Resume: resuming delete flow", "substate", st.Substate, "userID", in.UserID)
	switch st.Substate {
	case StateSelectTask:
		return f.selectTask(in)
	case StateAskConfirmation:
		return f.confirm(in)
	default:
		return f.identify(in)
	}
}

func (f *DeleteFlow) identify(in Input) Result {
	if len(in.Tasks) == 0 {
		return Result{
			Reply:   "You don't have any tasks to delete right now.",
			Intent:  IntentClarify,
			Command: deleteCommand(nil, false, 0.3, []string{"task_selection"}),
		}
	}

	matches := FindCandidates(in.Tasks, in.Message)
	switch {
	case len(matches) == 0:
		// Usability shortcut: a bare "delete task" with exactly one task
		// skips disambiguation and goes straight to confirmation.
		if len(in.Tasks) == 1 && lexicon.GenericDeletePhrases[NormalizeText(in.Message)] {
			return f.askConfirmation(in.Tasks[0])
		}
		reply := "Which task would you like to delete? You can give its name or number."
		return Result{
			Reply:   AppendMarker(reply, State{Flow: FlowDelete, Substate: StateIdentifyTask}),
			Intent:  IntentClarify,
			Command: deleteCommand(nil, false, 0.4, []string{"task_selection"}),
		}
	case len(matches) == 1:
		return f.askConfirmation(matches[0])
	default:
		return Result{
			Reply:   AppendMarker(candidateList("Which of these should I delete?", matches), State{Flow: FlowDelete, Substate: StateSelectTask}),
			Intent:  IntentClarify,
			Command: deleteCommand(nil, false, 0.4, []string{"task_selection"}),
		}
	}
}

func (f *DeleteFlow) selectTask(in Input) Result {
	original, ok := userMessageBeforeMarker(in.History, FlowDelete, StateSelectTask, StateIdentifyTask)
	if !ok {
		slog.Warn("DeleteFlow.selectTask: no originating message found, restarting identification", "userID", in.UserID)
		return f.identify(in)
	}
	candidates := capCandidates(FindCandidates(in.Tasks, original))
	task, ok := resolveSelection(candidates, in.Message)
	if !ok {
		return Result{
			Reply:   AppendMarker(candidateList("I didn't recognize that choice. Which of these should I delete?", candidates), State{Flow: FlowDelete, Substate: StateSelectTask}),
			Intent:  IntentClarify,
			Command: deleteCommand(nil, false, 0.4, []string{"task_selection"}),
		}
	}
	return f.askConfirmation(task)
}

func (f *DeleteFlow) askConfirmation(task models.Task) Result {
	reply := fmt.Sprintf("Delete %q", task.Title)
	if task.Priority != "" {
		reply += fmt.Sprintf(" (priority %s)", task.Priority)
	}
	reply += "? Reply yes or no."
	return Result{
		Reply:   AppendMarker(reply, State{Flow: FlowDelete, Substate: StateAskConfirmation}),
		Intent:  IntentPotentialDelete,
		Command: deleteCommand(refFor(task), false, 0.5, []string{"confirmation"}),
	}
}

func (f *DeleteFlow) confirm(in Input) Result {
	task, ok := taskMentionedNearMarker(in.History, in.Tasks, FlowDelete, StateAskConfirmation, StateSelectTask)
	if !ok {
		slog.Warn("DeleteFlow.confirm: could not recover task reference, restarting identification", "userID", in.UserID)
		return f.identify(in)
	}

	c := ParseConfirmation(in.Message)
	switch {
	case c.Confirmed:
		reply := AppendMarker(fmt.Sprintf("Deleting %q.", task.Title), State{Flow: FlowDone})
		return Result{
			Reply:   reply,
			Intent:  IntentDeleteTask,
			Command: deleteCommand(refFor(task), true, 1.0, nil),
		}
	case c.Cancelled:
		reply := AppendMarker("Okay, I won't delete anything.", State{Flow: FlowDone})
		return Result{
			Reply:  reply,
			Intent: IntentDeleteTaskCancelled,
		}
	default:
		reply := AppendMarker(fmt.Sprintf("Just to be safe: should I delete %q? Please reply yes or no.", task.Title), State{Flow: FlowDelete, Substate: StateAskConfirmation})
		return Result{
			Reply:   reply,
			Intent:  IntentClarify,
			Command: deleteCommand(refFor(task), false, 0.5, []string{"confirmation"}),
		}
	}
}

// candidateList renders up to maxCandidates tasks as a numbered list.
func candidateList(header string, candidates []models.Task) string {
	var b strings.Builder
	b.WriteString(header)
	for i, t := range capCandidates(candidates) {
		b.WriteString(fmt.Sprintf("\n%d. %s (%s)", i+1, t.Title, t.ID))
	}
	return b.String()
}

func capCandidates(candidates []models.Task) []models.Task {
	if len(candidates) > maxCandidates {
		return candidates[:maxCandidates]
	}
	return candidates
}

// resolveSelection interprets a selection message against the shown
// candidates, in priority order: positional number, exact task ID, exact
// normalized title.
func resolveSelection(candidates []models.Task, message string) (models.Task, bool) {
	trimmed := strings.TrimSpace(message)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
		return models.Task{}, false
	}
	lower := strings.ToLower(trimmed)
	for _, t := range candidates {
		if t.ID != "" && strings.ToLower(t.ID) == lower {
			return t, true
		}
	}
	norm := normalizeTitle(message)
	for _, t := range candidates {
		if normalizeTitle(t.Title) == norm {
			return t, true
		}
	}
	return models.Task{}, false
}
