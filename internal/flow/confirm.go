package flow

import (
	"strings"

	"github.com/tasklane/chatbot/internal/lexicon"
)

// Confirmation classifies free text as confirm, cancel, or neither.
type Confirmation struct {
	Confirmed bool
	Cancelled bool
}

// ParseConfirmation tokenizes the text and checks each token against the
// fixed bilingual confirm/cancel vocabularies. When both appear,
// cancellation wins: the engine never executes on ambiguous input.
func ParseConfirmation(text string) Confirmation {
	var c Confirmation
	for _, tok := range strings.Fields(NormalizeText(text)) {
		if lexicon.ConfirmWords[tok] {
			c.Confirmed = true
		}
		if lexicon.CancelWords[tok] {
			c.Cancelled = true
		}
	}
	if c.Cancelled {
		c.Confirmed = false
	}
	return c
}
