package flow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tasklane/chatbot/internal/lexicon"
	"github.com/tasklane/chatbot/internal/models"
)

// UpdateFlow extends the delete flow's task identification with field and
// value capture: identify the task, pick a field, supply its new value,
// then confirm. The command becomes ready only after an explicit yes with
// both a task reference and a captured field value.
type UpdateFlow struct{}

// Start enters the flow from router classification.
func (f *UpdateFlow) Start(in Input) Result {
	slog.Debug("UpdateFlow.Start: entering update flow", "userID", in.UserID, "tasks", len(in.Tasks))
	return f.identify(in)
}

// Resume re-enters the flow at the sub-state recorded in the marker.
// Unknown sub-states fall back to IDENTIFY_TASK.
func (f *UpdateFlow) Resume(st State, in Input) Result {
	slog.Debug("UpdateFlow.Resume: resuming update flow", "substate", st.Substate, "param", st.Param, "userID", in.UserID)
	switch st.Substate {
	case StateSelectTask:
		return f.selectTask(in)
	case StateAskField:
		return f.handleField(in)
	case StateAskValue:
		return f.handleValue(in, st.Param)
	case StateAskConfirmation:
		return f.confirm(in)
	default:
		return f.identify(in)
	}
}

func (f *UpdateFlow) identify(in Input) Result {
	if len(in.Tasks) == 0 {
		return Result{
			Reply:   "You don't have any tasks to update right now.",
			Intent:  IntentClarify,
			Command: updateCommand(nil, nil, false, 0.3, []string{"task_selection"}),
		}
	}

	matches := FindCandidates(in.Tasks, in.Message)
	switch {
	case len(matches) == 0:
		if len(in.Tasks) == 1 && lexicon.GenericUpdatePhrases[NormalizeText(in.Message)] {
			return f.askField(in.Tasks[0])
		}
		reply := "Which task would you like to update? You can give its name or number."
		return Result{
			Reply:   AppendMarker(reply, State{Flow: FlowUpdate, Substate: StateIdentifyTask}),
			Intent:  IntentPotentialUpdate,
			Command: updateCommand(nil, nil, false, 0.4, []string{"task_selection"}),
		}
	case len(matches) == 1:
		return f.askField(matches[0])
	default:
		return Result{
			Reply:   AppendMarker(candidateList("Which of these should I update?", matches), State{Flow: FlowUpdate, Substate: StateSelectTask}),
			Intent:  IntentPotentialUpdate,
			Command: updateCommand(nil, nil, false, 0.4, []string{"task_selection"}),
		}
	}
}

func (f *UpdateFlow) selectTask(in Input) Result {
	original, ok := userMessageBeforeMarker(in.History, FlowUpdate, StateSelectTask, StateIdentifyTask)
	if !ok {
		slog.Warn("UpdateFlow.selectTask: no originating message found, restarting identification", "userID", in.UserID)
		return f.identify(in)
	}
	candidates := capCandidates(FindCandidates(in.Tasks, original))
	task, ok := resolveSelection(candidates, in.Message)
	if !ok {
		return Result{
			Reply:   AppendMarker(candidateList("I didn't recognize that choice. Which of these should I update?", candidates), State{Flow: FlowUpdate, Substate: StateSelectTask}),
			Intent:  IntentPotentialUpdate,
			Command: updateCommand(nil, nil, false, 0.4, []string{"task_selection"}),
		}
	}
	return f.askField(task)
}

// askField prompts for the field to change. The reply mentions the task
// title: the confirmation step later recovers the task reference from it.
func (f *UpdateFlow) askField(task models.Task) Result {
	reply := fmt.Sprintf("What would you like to change in %q? (%s)", task.Title, strings.Join(lexicon.UpdatableFields, " / "))
	return Result{
		Reply:   AppendMarker(reply, State{Flow: FlowUpdate, Substate: StateAskField}),
		Intent:  IntentPotentialUpdate,
		Command: updateCommand(refFor(task), nil, false, 0.5, []string{"field"}),
	}
}

func (f *UpdateFlow) handleField(in Input) Result {
	field, ok := lexicon.CanonicalField(NormalizeText(in.Message))
	if !ok {
		reply := fmt.Sprintf("I can change one of: %s. Which should it be?", strings.Join(lexicon.UpdatableFields, ", "))
		return Result{
			Reply:   AppendMarker(reply, State{Flow: FlowUpdate, Substate: StateAskField}),
			Intent:  IntentPotentialUpdate,
			Command: updateCommand(f.recoverRef(in), nil, false, 0.5, []string{"field"}),
		}
	}
	return Result{
		Reply:   AppendMarker(valuePrompt(field), State{Flow: FlowUpdate, Substate: StateAskValue, Param: field}),
		Intent:  IntentPotentialUpdate,
		Command: updateCommand(f.recoverRef(in), nil, false, 0.6, []string{field}),
	}
}

func (f *UpdateFlow) handleValue(in Input, field string) Result {
	value, ok := extractFieldValue(field, in)
	if !ok {
		reply := valueError(field)
		if field == "deadline" && DeadlineAmbiguous(in.Message, in.History, in.Now) {
			reply = "Relative dates are tricky for me. What exact date should it be due? A concrete date like 20/1/2026 works best, or say \"none\"."
		}
		return Result{
			Reply:   AppendMarker(reply, State{Flow: FlowUpdate, Substate: StateAskValue, Param: field}),
			Intent:  IntentPotentialUpdate,
			Command: updateCommand(f.recoverRef(in), nil, false, 0.6, []string{field}),
		}
	}

	task, refOK := taskMentionedNearMarker(in.History, in.Tasks, FlowUpdate, StateAskField)
	if !refOK {
		slog.Warn("UpdateFlow.handleValue: could not recover task reference, restarting identification", "userID", in.UserID)
		return f.identify(in)
	}

	reply := fmt.Sprintf("Change %s of %q to %s? Reply yes or no.", field, task.Title, renderValue(field, value))
	return Result{
		Reply:   AppendMarker(reply, State{Flow: FlowUpdate, Substate: StateAskConfirmation}),
		Intent:  IntentPotentialUpdate,
		Command: updateCommand(refFor(task), map[string]any{field: value}, false, 0.7, []string{"confirmation"}),
	}
}

func (f *UpdateFlow) confirm(in Input) Result {
	task, refOK := taskMentionedNearMarker(in.History, in.Tasks, FlowUpdate, StateAskField)
	field, valueReply, valueOK := valueMarkerReply(in.History, FlowUpdate)

	var value any
	if valueOK {
		value, valueOK = extractFieldValue(field, Input{Message: valueReply, Now: in.Now})
	}

	c := ParseConfirmation(in.Message)
	switch {
	case c.Confirmed && refOK && valueOK:
		reply := AppendMarker(fmt.Sprintf("Updating %s of %q.", field, task.Title), State{Flow: FlowDone})
		return Result{
			Reply:   reply,
			Intent:  IntentUpdateTask,
			Command: updateCommand(refFor(task), map[string]any{field: value}, true, 1.0, nil),
		}
	case c.Cancelled:
		reply := AppendMarker("Okay, nothing was changed.", State{Flow: FlowDone})
		return Result{
			Reply:  reply,
			Intent: IntentUpdateTaskCancelled,
		}
	case !refOK || !valueOK:
		slog.Warn("UpdateFlow.confirm: could not recover pending change, restarting identification", "userID", in.UserID, "hasRef", refOK, "hasValue", valueOK)
		return f.identify(in)
	default:
		reply := AppendMarker(fmt.Sprintf("Should I change %s of %q to %s? Please reply yes or no.", field, task.Title, renderValue(field, value)), State{Flow: FlowUpdate, Substate: StateAskConfirmation})
		return Result{
			Reply:   reply,
			Intent:  IntentPotentialUpdate,
			Command: updateCommand(refFor(task), map[string]any{field: value}, false, 0.7, []string{"confirmation"}),
		}
	}
}

// recoverRef recovers the task reference for intermediate steps; nil when
// no prior turn pins a task.
func (f *UpdateFlow) recoverRef(in Input) *models.TaskRef {
	task, ok := taskMentionedNearMarker(in.History, in.Tasks, FlowUpdate, StateAskField)
	if !ok {
		return nil
	}
	return refFor(task)
}

// extractFieldValue runs the matching field extractor. A deadline of
// "none" is accepted as an explicit null, not a failure.
func extractFieldValue(field string, in Input) (any, bool) {
	switch field {
	case "title":
		title := strings.TrimSpace(in.Message)
		return title, title != ""
	case "priority":
		p, ok := ParsePriority(in.Message)
		return p, ok
	case "status":
		s, ok := ParseStatus(in.Message)
		return s, ok
	case "deadline":
		normalized, ok := ValidateDeadline(in.Message, in.Now)
		if !ok {
			return nil, false
		}
		if normalized == "" {
			return nil, true
		}
		return normalized, true
	default:
		return nil, false
	}
}

func valuePrompt(field string) string {
	switch field {
	case "title":
		return "What should the new title be?"
	case "priority":
		return "What priority should it have? (low / medium / high / urgent)"
	case "status":
		return "What status should it have? (open / in_progress / done)"
	case "deadline":
		return "When should it be due? Give a date like 20/1/2026, or say \"none\"."
	default:
		return "What should the new value be?"
	}
}

func valueError(field string) string {
	switch field {
	case "title":
		return "The title can't be empty. What should it be?"
	case "priority":
		return "Please choose one of: low, medium, high, urgent."
	case "status":
		return "Please choose one of: open, in_progress, done."
	case "deadline":
		return "I couldn't read that as a date. Use a format like 20/1/2026 or 2026-01-20, or say \"none\"."
	default:
		return "I couldn't use that value. Please try again."
	}
}

// renderValue formats a captured value for a confirmation summary.
func renderValue(field string, value any) string {
	if value == nil {
		return "none"
	}
	s := fmt.Sprintf("%v", value)
	if field == "priority" {
		return priorityLabel(s)
	}
	return s
}
