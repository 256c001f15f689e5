package constant

// Message roles as stored in the messages table.
const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

const (
	// DefaultSessionTitle is the sentinel a fresh session carries until the
	// first prompt renames it.
	DefaultSessionTitle = "New Chat"

	// SessionTitleMaxLen bounds the auto-assigned title (in runes).
	SessionTitleMaxLen = 50
)

// User-visible literals for the optimistic view.
const (
	NoResponsePlaceholder = "(No response)"

	TextGenerationErrorMessage  = "Sorry, there was an error with the AI response."
	ImageGenerationErrorMessage = "Sorry, there was an error with image generation."
)
