package neonbeat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rejectionFallback is used when the server gives no usable reason.
const rejectionFallback = "request rejected by server"

// TransportUnreachable reports that the server could not be reached at
// all. It is surfaced to the operator and never crashes the process.
type TransportUnreachable struct {
	Err error
}

func (e *TransportUnreachable) Error() string {
	return fmt.Sprintf("server unreachable: %v", e.Err)
}

func (e *TransportUnreachable) Unwrap() error {
	return e.Err
}

// CommandRejected reports a non-success response to a command. Reason
// is a best-effort human-readable explanation extracted from the body.
type CommandRejected struct {
	Op     string
	Status int
	Reason string
}

func (e *CommandRejected) Error() string {
	return fmt.Sprintf("%s rejected (status %d): %s", e.Op, e.Status, e.Reason)
}

// rejectionReason extracts a reason from a response body: a structured
// error field first, then the raw text, then a static fallback.
func rejectionReason(body []byte) string {
	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Error != "" {
			return structured.Error
		}
		if structured.Message != "" {
			return structured.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return rejectionFallback
}
