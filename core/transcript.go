package core

// Transcript is the append-only ordered history of one conversation run. It
// is owned exclusively by the team executing the run; participants and
// termination conditions only ever see snapshots obtained via Messages.
//
// Transcript is not safe for concurrent mutation. The scheduler serializes
// turns, so a single goroutine appends at a time; snapshots are copies and
// may be read freely after being handed out.
type Transcript struct {
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript { return &Transcript{} }

// Append stamps msg with the next sequence number, appends it and returns
// the stamped copy. The stored message is never mutated afterwards.
func (t *Transcript) Append(msg Message) Message {
	msg.Sequence = len(t.messages)
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a snapshot copy of the full message prefix in append
// order. Mutating the returned slice does not affect the transcript.
func (t *Transcript) Messages() []Message {
	snapshot := make([]Message, len(t.messages))
	copy(snapshot, t.messages)
	return snapshot
}

// Len returns the number of messages appended so far.
func (t *Transcript) Len() int { return len(t.messages) }

// Last returns the most recently appended message, or false when empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
