package genai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"

	"github.com/tasklane/chatbot/internal/flow"
)

// DefaultRewriteTimeout bounds a single rewrite attempt.
const DefaultRewriteTimeout = 5 * time.Second

const rewriteSystemPrompt = "You rephrase short task-assistant replies to sound warmer and more natural. " +
	"Keep the same language as the reply (English or Hebrew). " +
	"Do not add, remove, or change any facts, task names, dates, numbers, options, or list items. " +
	"Return only the rephrased reply."

// Rewriter cosmetically rephrases deterministic engine replies through the
// LLM. The state marker and the structured command are never touched: the
// marker is detached before the call and re-attached verbatim after it.
//
// The fallback is mandatory, not best-effort: on timeout, API error, or an
// unusable completion, the original reply is returned unchanged. A single
// failure reverts immediately; there are no retries.
type Rewriter struct {
	client  ClientInterface
	timeout time.Duration
}

// NewRewriter creates a rewriter around the given client. A zero timeout
// selects DefaultRewriteTimeout.
func NewRewriter(client ClientInterface, timeout time.Duration) *Rewriter {
	if timeout <= 0 {
		timeout = DefaultRewriteTimeout
	}
	return &Rewriter{client: client, timeout: timeout}
}

// Rewrite returns a rephrased version of reply, or reply itself when the
// rewrite cannot be used.
func (r *Rewriter) Rewrite(ctx context.Context, userMessage, reply string) string {
	if r == nil || r.client == nil {
		return reply
	}
	text, marker := flow.SplitMarker(reply)
	if strings.TrimSpace(text) == "" {
		return reply
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(rewriteSystemPrompt),
		openai.UserMessage("User said: " + userMessage + "\nAssistant reply to rephrase: " + text),
	}
	rewritten, err := r.client.GenerateWithMessages(ctx, messages)
	if err != nil {
		slog.Warn("Rewriter.Rewrite: falling back to deterministic reply", "error", err)
		return reply
	}
	rewritten = flow.StripMarkers(rewritten)
	if rewritten == "" {
		slog.Warn("Rewriter.Rewrite: empty completion, falling back to deterministic reply")
		return reply
	}
	if marker != "" {
		rewritten = rewritten + "\n" + marker
	}
	return rewritten
}
