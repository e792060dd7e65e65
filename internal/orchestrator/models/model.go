package models

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a single message in the conversation history.
// The history is append-only: a message is never mutated after insertion.
type Message struct {
	Role    string
	Content string

	// ToolCallID correlates a tool message to the request that produced it.
	ToolCallID string

	// ToolName is set on tool messages alongside ToolCallID; some providers
	// correlate results by function name rather than call id.
	ToolName string

	// ToolCalls holds the actions an assistant message asked to be performed.
	ToolCalls []ToolCall
}

// ToolCall represents a structured tool invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}
