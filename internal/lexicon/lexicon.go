// Package lexicon centralizes every English/Hebrew token set used by the
// conversational engine: confirmation vocabulary, slot value aliases,
// date words, field names, and routing trigger phrases.
//
// Keeping both locales in one place keeps them behaviorally symmetric and
// testable together. All lookups expect input already lowercased and
// whitespace-collapsed by the caller.
package lexicon

// ConfirmWords are tokens that count as an explicit confirmation.
var ConfirmWords = map[string]bool{
	"yes": true, "ok": true, "okay": true, "confirm": true, "sure": true, "yep": true,
	"כן": true, "אישור": true, "מאשר": true, "מאשרת": true, "בסדר": true, "אוקיי": true,
}

// CancelWords are tokens that count as an explicit cancellation.
// On a tie with ConfirmWords, cancellation wins.
var CancelWords = map[string]bool{
	"no": true, "cancel": true, "canceled": true, "cancelled": true, "stop": true,
	"לא": true, "בטל": true, "ביטול": true, "לבטל": true, "תבטל": true,
}

// priorityAliases maps every accepted priority token to its canonical
// English value.
var priorityAliases = map[string]string{
	"low": "low", "medium": "medium", "high": "high", "urgent": "urgent",
	"נמוכה": "low", "נמוך": "low",
	"בינונית": "medium", "בינוני": "medium",
	"גבוהה": "high", "גבוה": "high",
	"דחופה": "urgent", "דחוף": "urgent",
}

// HebrewPriorityLabels maps canonical priorities to their Hebrew rendering,
// used when echoing a captured value back to the user.
var HebrewPriorityLabels = map[string]string{
	"low":    "נמוכה",
	"medium": "בינונית",
	"high":   "גבוהה",
	"urgent": "דחופה",
}

// CanonicalPriority resolves a priority token to its canonical value.
func CanonicalPriority(token string) (string, bool) {
	v, ok := priorityAliases[token]
	return v, ok
}

// statusAliases maps every accepted status token to its canonical English
// value. "completed" is an alias kept for backward compatibility with
// older frontends.
var statusAliases = map[string]string{
	"open": "open", "in_progress": "in_progress", "in progress": "in_progress",
	"done": "done", "completed": "done",
	"פתוחה": "open", "בתהליך": "in_progress", "הושלמה": "done", "בוצעה": "done",
}

// CanonicalStatus resolves a status token to its canonical value.
func CanonicalStatus(token string) (string, bool) {
	v, ok := statusAliases[token]
	return v, ok
}

// NoneWords are tokens that explicitly decline a deadline.
var NoneWords = map[string]bool{
	"none": true, "no": true, "skip": true, "null": true,
	"אין": true, "ללא": true, "דלג": true, "בלי": true,
}

// RelativeDateWords are words that describe a date without naming one.
// Input containing them is ambiguous unless recent history pins a
// concrete numeric date.
var RelativeDateWords = []string{
	"today", "tomorrow", "tonight", "next week", "weekend",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"היום", "מחר", "מחרתיים", "השבוע", "בשבוע הבא",
	"ראשון", "שני", "שלישי", "רביעי", "חמישי", "שישי", "שבת",
}

// DeadlineAskWords mark an assistant message as a deadline question.
var DeadlineAskWords = []string{
	"deadline", "due date", "due", "when",
	"דדליין", "תאריך יעד", "עד מתי", "מתי",
}

// fieldAliases maps field-name tokens to canonical task field names.
var fieldAliases = map[string]string{
	"title": "title", "priority": "priority", "deadline": "deadline", "status": "status",
	"כותרת": "title", "שם": "title",
	"עדיפות": "priority",
	"תאריך יעד": "deadline", "דדליין": "deadline", "תאריך": "deadline",
	"סטטוס": "status", "מצב": "status",
}

// CanonicalField resolves a field-name token to its canonical field.
func CanonicalField(token string) (string, bool) {
	v, ok := fieldAliases[token]
	return v, ok
}

// UpdatableFields are the task fields the update flow can change, in the
// order they are offered to the user.
var UpdatableFields = []string{"title", "priority", "deadline", "status"}

// Routing trigger sets, checked in the router's fixed priority order.
var (
	InsightsWords = []string{"insights", "summary", "weekly", "overview", "תובנות", "סיכום", "שבועי"}
	UrgencyWords  = []string{"urgent", "overdue", "due soon", "דחוף", "דחופות", "באיחור"}
	DeleteWords   = []string{"delete", "remove", "erase", "מחק", "תמחק", "מחיקה", "הסר"}
	UpdateWords   = []string{"update", "edit", "change", "modify", "complete", "finish", "mark", "עדכן", "תעדכן", "ערוך", "שנה", "סיים", "השלם"}
	ListWords     = []string{"list", "show", "my tasks", "all tasks", "רשימה", "הצג", "המשימות שלי", "כל המשימות"}
	HelpWords     = []string{"help", "what can you do", "עזרה", "מה אתה יודע"}
)

// HebrewCreateVerbs paired with HebrewTaskNouns trigger the create flow.
var HebrewCreateVerbs = []string{"צור", "תיצור", "הוסף", "תוסיף", "הוספת", "יצירת"}

// HebrewTaskNouns are the Hebrew task/item nouns.
var HebrewTaskNouns = []string{"משימה", "משימות", "מטלה"}

// CreateWordsEN trigger the create flow only when an EnglishTaskNoun is
// also present, to avoid hijacking casual "make"/"add" sentences.
var CreateWordsEN = []string{"create", "add", "new", "make"}

// EnglishTaskNouns gate the English create trigger.
var EnglishTaskNouns = []string{"task", "item", "todo", "reminder"}

// GenericDeletePhrases are bare delete requests that, with exactly one
// task in the list, auto-select it.
var GenericDeletePhrases = map[string]bool{
	"delete task": true, "delete a task": true, "delete the task": true,
	"remove task": true, "remove a task": true, "remove the task": true,
	"מחק משימה": true, "תמחק משימה": true, "מחק את המשימה": true,
}

// GenericUpdatePhrases are bare update requests that, with exactly one
// task in the list, auto-select it.
var GenericUpdatePhrases = map[string]bool{
	"update task": true, "update a task": true, "update the task": true,
	"edit task": true, "edit the task": true, "change task": true,
	"עדכן משימה": true, "תעדכן משימה": true, "עדכן את המשימה": true,
}

// HebrewTaskWord is the noun used in "<noun> <id>" task references.
const HebrewTaskWord = "משימה"
