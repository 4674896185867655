package flow

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tasklane/chatbot/internal/lexicon"
)

// Router is the top-level dispatcher. When the history carries an active
// flow marker the message goes straight to that flow - an active flow can
// never be hijacked by an accidental keyword match. Only markerless (or
// terminal) conversations are classified by keyword rules.
type Router struct {
	create *CreateFlow
	del    *DeleteFlow
	upd    *UpdateFlow
}

// NewRouter creates a router with all three flow state machines.
func NewRouter() *Router {
	return &Router{
		create: &CreateFlow{},
		del:    &DeleteFlow{},
		upd:    &UpdateFlow{},
	}
}

// Route processes one user message against the conversation history and
// task list. It is a pure function of its input: no state survives the
// call, and identical inputs produce identical results.
func (r *Router) Route(ctx context.Context, in Input) Result {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	slog.Debug("Router.Route: processing message", "userID", in.UserID, "historyLen", len(in.History), "tasks", len(in.Tasks))

	if raw, ok := ExtractLastMarker(in.History); ok {
		if st, parsed := ParseMarker(raw); parsed {
			switch st.Flow {
			case FlowCreate:
				return r.create.Resume(st, in)
			case FlowDelete:
				return r.del.Resume(st, in)
			case FlowUpdate:
				return r.upd.Resume(st, in)
			}
			// DONE and QUERY carry no active flow; fall through to
			// keyword classification.
			slog.Debug("Router.Route: marker carries no active flow", "flow", st.Flow, "userID", in.UserID)
		}
	}
	return r.classify(ctx, in)
}

// classify applies the fixed-priority keyword rules to a markerless
// message. First match wins.
func (r *Router) classify(_ context.Context, in Input) Result {
	lower := strings.ToLower(in.Message)

	switch {
	case containsAny(lower, lexicon.InsightsWords):
		return insightsResult(in)
	case containsAny(lower, lexicon.UrgencyWords):
		return urgentResult(in)
	case containsAny(lower, lexicon.DeleteWords):
		return r.del.Start(in)
	case containsAny(lower, lexicon.UpdateWords):
		return r.upd.Start(in)
	case containsAny(lower, lexicon.HebrewCreateVerbs) && containsAny(lower, lexicon.HebrewTaskNouns):
		return r.create.Start(in)
	case containsAny(lower, lexicon.CreateWordsEN) && containsAny(lower, lexicon.EnglishTaskNouns):
		return r.create.Start(in)
	case containsAny(lower, lexicon.ListWords):
		return listResult(in)
	case containsAny(lower, lexicon.HelpWords):
		return helpResult(in)
	default:
		return generalResult(in)
	}
}
