package flow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/tasklane/chatbot/internal/lexicon"
	"github.com/tasklane/chatbot/internal/models"
)

// Stale placeholder values that older frontends injected as defaults.
// They must never silently succeed, so any input containing them is
// rejected outright rather than parsed.
var staleYearLiterals = []string{"2021", "2022", "2023"}

var staleDefaultDates = []string{"25/10/2023", "2023-10-25", "25-10-2023"}

// numericDatePattern recognizes a concrete numeric date inside free text.
var numericDatePattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

// ValidateDeadline parses raw into a canonical deadline string.
//
// Return values: ("", true) means the user explicitly declined a deadline
// (or gave none); (date, true) is a valid deadline normalized to
// YYYY-MM-DD (or an ISO timestamp in UTC); ("", false) is invalid input
// the caller should re-prompt for.
//
// Two-part dates (day and month) get the current year injected from now.
func ValidateDeadline(raw string, now time.Time) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	if lexicon.NoneWords[NormalizeText(raw)] {
		return "", true
	}
	for _, stale := range staleDefaultDates {
		if strings.Contains(raw, stale) {
			return "", false
		}
	}
	for _, year := range staleYearLiterals {
		if strings.Contains(raw, year) {
			return "", false
		}
	}

	// Strict ISO-8601 first.
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.RFC3339), true
	}

	// Otherwise only digits and the separators . - / are allowed.
	for _, r := range raw {
		if !unicode.IsDigit(r) && r != '.' && r != '-' && r != '/' {
			return "", false
		}
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '.' || r == '-' || r == '/'
	})

	var day, month, year int
	switch len(parts) {
	case 3:
		if len(parts[0]) == 4 {
			year, month, day = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
		} else {
			day, month, year = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
		}
	case 2:
		day, month = atoi(parts[0]), atoi(parts[1])
		year = now.Year()
	default:
		return "", false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return "", false
	}
	// Reject impossible calendar dates (e.g. Feb 31) that time.Date would
	// silently normalize into the next month.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// DeadlineAmbiguous reports whether the input describes a date without
// naming one ("tomorrow", weekday names). A relative word is treated as
// resolved when the last 3 history turns already pin a concrete numeric
// date. Anything that neither parses nor declines is ambiguous.
func DeadlineAmbiguous(raw string, history []models.ConversationTurn, now time.Time) bool {
	if lexicon.NoneWords[NormalizeText(raw)] {
		return false
	}
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, "-") && strings.Contains(trimmed, ":") {
		if _, ok := ValidateDeadline(trimmed, now); ok {
			return false
		}
	}
	lower := strings.ToLower(raw)
	for _, word := range lexicon.RelativeDateWords {
		if strings.Contains(lower, word) {
			return !recentNumericDate(history, 3)
		}
	}
	if _, ok := ValidateDeadline(trimmed, now); ok {
		return false
	}
	return true
}

// recentNumericDate reports whether any of the last n turns contains a
// concrete numeric date pattern. Only user turns count: assistant prompts
// embed example dates that must not pin anything.
func recentNumericDate(history []models.ConversationTurn, n int) bool {
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	for _, turn := range history[start:] {
		if turn.Role != models.RoleUser {
			continue
		}
		if numericDatePattern.MatchString(turn.Content) {
			return true
		}
	}
	return false
}

// WasDeadlineAskedLast reports whether the single most recent turn is an
// assistant message asking for a deadline. Flows use it to enforce that
// the deadline is always the last slot collected.
func WasDeadlineAskedLast(history []models.ConversationTurn) bool {
	if len(history) == 0 {
		return false
	}
	last := history[len(history)-1]
	if last.Role != models.RoleAssistant {
		return false
	}
	return containsAny(strings.ToLower(last.Content), lexicon.DeadlineAskWords)
}
