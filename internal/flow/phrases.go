package flow

import "hash/fnv"

// SelectVariant deterministically picks one of the canned phrasing
// variants for a user. Stability is a contract: a fixed user_id always
// selects the same variant, so repeated identical calls produce
// byte-identical replies.
func SelectVariant(userID string, variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(userID))
	return variants[int(h.Sum32())%len(variants)]
}

// Canned phrasing variants. Each set must be interchangeable: same
// meaning, same embedded keywords, different tone.
var (
	askTitleVariants = []string{
		"Sure! What should the task be called?",
		"Happy to help. What's the title of the new task?",
		"Let's create it. What should I call the task?",
	}

	generalVariants = []string{
		"I'm your task assistant. I can create, update, delete and list tasks - what would you like to do?",
		"Hi! Ask me to create a task, update one, or show your list.",
		"I manage your tasks. Try \"create a task\" or \"show my tasks\".",
	}
)
