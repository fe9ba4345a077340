package core

import (
	"time"

	"github.com/google/uuid"
)

// UserSource is the synthetic identity that authors the task message opening
// every conversation run. No participant may register under this name.
const UserSource = "user"

// Conversation roles carried by messages. Role determines how a backend
// adapter maps a message into its provider's chat format; Source carries the
// authoring identity, which is richer than the role (many agents share the
// "assistant" role).
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is the immutable unit of conversation. It is created once by the
// agent (or synthetic user) that authored it and never mutated afterwards.
// Sequence is assigned when the message is appended to a Transcript and
// strictly increases within a single run, starting at 0 for the task.
type Message struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message authored by source. Sequence is left at zero
// until the message is appended to a transcript.
func NewMessage(source, role, content string) Message {
	return Message{
		ID:        NewID(),
		Source:    source,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserMessage creates the synthetic user-authored message carrying a task.
func NewUserMessage(content string) Message {
	return NewMessage(UserSource, RoleUser, content)
}

// NewID generates a unique identifier for messages and runs.
func NewID() string { return uuid.NewString() }
