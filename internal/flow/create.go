package flow

import (
	"fmt"
	"log/slog"
	"strings"
)

// CreateFlow walks the user through creating a task: title, then priority,
// then deadline, in that fixed order. Only title and priority are
// mandatory; the deadline is optional but is always explicitly asked
// before the command becomes ready - it is never defaulted or guessed.
type CreateFlow struct{}

// Start enters the flow from router classification.
func (f *CreateFlow) Start(in Input) Result {
	slog.Debug("CreateFlow.Start: entering create flow", "userID", in.UserID)
	return f.askTitle(in)
}

// Resume re-enters the flow at the sub-state recorded in the marker.
// Unknown sub-states fall back to the flow's initial state rather than
// raising: a corrupted marker restarts the script, never crashes it.
func (f *CreateFlow) Resume(st State, in Input) Result {
	slog.Debug("CreateFlow.Resume: resuming create flow", "substate", st.Substate, "userID", in.UserID)
	switch st.Substate {
	case StateAskTitle:
		return f.handleTitle(in)
	case StateAskPriority:
		return f.handlePriority(in)
	case StateAskDeadline:
		return f.handleDeadline(in)
	default:
		return f.askTitle(in)
	}
}

func (f *CreateFlow) askTitle(in Input) Result {
	reply := AppendMarker(SelectVariant(in.UserID, askTitleVariants), State{Flow: FlowCreate, Substate: StateAskTitle})
	return Result{
		Reply:   reply,
		Intent:  IntentPotentialCreate,
		Command: createCommand(nil, false, 0.5, []string{"title", "priority", "deadline"}),
	}
}

func (f *CreateFlow) handleTitle(in Input) Result {
	title := strings.TrimSpace(in.Message)
	if title == "" {
		return f.askTitle(in)
	}
	reply := fmt.Sprintf("Got it - %q. What priority should it have? (low / medium / high / urgent)", title)
	return Result{
		Reply:   AppendMarker(reply, State{Flow: FlowCreate, Substate: StateAskPriority}),
		Intent:  IntentPotentialCreate,
		Command: createCommand(map[string]any{"title": title}, false, 0.6, []string{"priority", "deadline"}),
	}
}

func (f *CreateFlow) handlePriority(in Input) Result {
	priority, ok := ParsePriority(in.Message)
	if !ok {
		reply := "I didn't catch that priority. Please choose one of: low, medium, high, urgent."
		return Result{
			Reply:   AppendMarker(reply, State{Flow: FlowCreate, Substate: StateAskPriority}),
			Intent:  IntentPotentialCreate,
			Command: createCommand(f.knownFields(in, "", ""), false, 0.6, []string{"priority", "deadline"}),
		}
	}
	title := f.recoverTitle(in)
	if title == "" {
		slog.Warn("CreateFlow.handlePriority: title missing from history, restarting", "userID", in.UserID)
		return f.askTitle(in)
	}
	reply := fmt.Sprintf("Priority set to %s. When is %q due? Give a date like 20/1/2026, or say \"none\".", priorityLabel(priority), title)
	return Result{
		Reply:   AppendMarker(reply, State{Flow: FlowCreate, Substate: StateAskDeadline}),
		Intent:  IntentPotentialCreate,
		Command: createCommand(map[string]any{"title": title, "priority": priority}, false, 0.7, []string{"deadline"}),
	}
}

func (f *CreateFlow) handleDeadline(in Input) Result {
	title := f.recoverTitle(in)
	priority := f.recoverPriority(in)
	if title == "" || priority == "" {
		slog.Warn("CreateFlow.handleDeadline: slots missing from history, restarting", "userID", in.UserID, "hasTitle", title != "", "hasPriority", priority != "")
		return f.askTitle(in)
	}

	// The deadline must be the question actually on the table. If the
	// transcript no longer ends with a deadline question, re-ask instead
	// of misreading the message as a date.
	if !WasDeadlineAskedLast(in.History) {
		return f.reaskDeadline(in, title, priority, false)
	}

	normalized, ok := ValidateDeadline(in.Message, in.Now)
	if !ok {
		ambiguous := DeadlineAmbiguous(in.Message, in.History, in.Now)
		return f.reaskDeadline(in, title, priority, ambiguous)
	}

	fields := map[string]any{"title": title, "priority": priority}
	var reply string
	if normalized == "" {
		fields["deadline"] = nil
		reply = fmt.Sprintf("Creating task %q with %s priority and no deadline.", title, priority)
	} else {
		fields["deadline"] = normalized
		reply = fmt.Sprintf("Creating task %q with %s priority, due %s.", title, priority, normalized)
	}
	// Terminal: the DONE marker supersedes the deadline question in the
	// history scan, so the next turn routes as a fresh message.
	return Result{
		Reply:   AppendMarker(reply, State{Flow: FlowDone}),
		Intent:  IntentAddTask,
		Command: createCommand(fields, true, 1.0, nil),
	}
}

func (f *CreateFlow) reaskDeadline(in Input, title, priority string, ambiguous bool) Result {
	reply := fmt.Sprintf("I couldn't read that as a date. When is %q due? Use a format like 20/1/2026 or 2026-01-20, or say \"none\".", title)
	if ambiguous {
		reply = fmt.Sprintf("Relative dates are tricky for me. When exactly is %q due? A concrete date like 20/1/2026 works best, or say \"none\".", title)
	}
	return Result{
		Reply:   AppendMarker(reply, State{Flow: FlowCreate, Substate: StateAskDeadline}),
		Intent:  IntentPotentialCreate,
		Command: createCommand(map[string]any{"title": title, "priority": priority}, false, 0.7, []string{"deadline"}),
	}
}

// recoverTitle replays the user reply to the most recent title question.
func (f *CreateFlow) recoverTitle(in Input) string {
	reply, ok := userReplyAfterMarker(in.History, FlowCreate, StateAskTitle)
	if !ok {
		return ""
	}
	return strings.TrimSpace(reply)
}

// recoverPriority replays the user reply to the most recent priority
// question through the priority extractor.
func (f *CreateFlow) recoverPriority(in Input) string {
	reply, ok := userReplyAfterMarker(in.History, FlowCreate, StateAskPriority)
	if !ok {
		return ""
	}
	priority, ok := ParsePriority(reply)
	if !ok {
		return ""
	}
	return priority
}

func (f *CreateFlow) knownFields(in Input, title, priority string) map[string]any {
	if title == "" {
		title = f.recoverTitle(in)
	}
	if priority == "" {
		priority = f.recoverPriority(in)
	}
	fields := map[string]any{}
	if title != "" {
		fields["title"] = title
	}
	if priority != "" {
		fields["priority"] = priority
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
