package gateway

import (
	"encoding/json"
	"fmt"
)

// Outcome statuses. Every tool execution resolves to exactly one of these;
// the orchestrator feeds the JSON form back to the model unconditionally.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusCancelled = "cancelled"
)

// Outcome is the normalized result of one tool call.
type Outcome struct {
	Status  string
	Payload map[string]any
}

// Success wraps a tool payload in a success outcome.
func Success(payload map[string]any) Outcome {
	return Outcome{Status: StatusSuccess, Payload: payload}
}

// Errorf builds an error outcome with a formatted message.
func Errorf(format string, args ...any) Outcome {
	return Outcome{
		Status:  StatusError,
		Payload: map[string]any{"message": fmt.Sprintf(format, args...)},
	}
}

// Cancelled builds the outcome recorded when the user declines a gated call.
func Cancelled(toolName string) Outcome {
	return Outcome{
		Status:  StatusCancelled,
		Payload: map[string]any{"message": fmt.Sprintf("User cancelled call to %s.", toolName)},
	}
}

// JSON renders the outcome as the JSON object fed back to the model. The
// status key always wins over any payload key of the same name.
func (o Outcome) JSON() string {
	body := make(map[string]any, len(o.Payload)+1)
	for k, v := range o.Payload {
		body[k] = v
	}
	body["status"] = o.Status

	bytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf(`{"status":%q,"message":"failed to encode tool result: %s"}`, StatusError, err)
	}
	return string(bytes)
}
