package core

import "context"

// Agent is the capability every conversation participant implements: given
// the transcript so far, produce exactly one new message.
//
// The scheduler depends only on this interface. Whether an implementation
// forwards the transcript to a reasoning backend or internally drives a
// whole nested team to termination is invisible to the caller; either way a
// single message comes back per invocation.
//
// Implementations must:
//   - Respect context cancellation while waiting on a backend
//   - Return the error unwrapped (typically a *BackendError) on failure
//     rather than a partially formed message
//   - Keep no per-run mutable state, so the same agent value can be reused
//     across independent runs
type Agent interface {
	// Name returns the agent's identity, unique within its team. It becomes
	// the Source of every message the agent authors.
	Name() string

	// Description returns a short human-readable summary of the agent's
	// purpose, used for logging and rendering.
	Description() string

	// Respond produces the agent's next message given a read-only snapshot
	// of the full transcript prefix.
	Respond(ctx context.Context, transcript []Message) (Message, error)
}
