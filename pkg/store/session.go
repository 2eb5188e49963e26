package store

// Turn roles for conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a conversation session.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds the per-conversation history used as generation context.
// Exactly one (user, assistant) pair is appended per successful query.
type Session struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
}
