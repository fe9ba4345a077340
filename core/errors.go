package core

import "fmt"

// BackendError reports a failure of a reasoning-backend completion call:
// auth, quota, network or a malformed response. It is never retried inside
// the scheduler; callers decide whether to re-run the whole conversation.
type BackendError struct {
	Provider string // backend vendor, e.g. "openai"
	Model    string // model identifier the call targeted
	Cause    error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("backend %s/%s: %v", e.Provider, e.Model, e.Cause)
	}
	return fmt.Sprintf("backend %s: %v", e.Provider, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *BackendError) Unwrap() error { return e.Cause }

// ConfigurationError reports a missing or invalid process-level setting
// (credential, model selection). It is raised before any team is constructed
// and is fatal to the process invocation.
type ConfigurationError struct {
	Setting string
	Reason  string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Setting, e.Reason)
}

// AbortedError reports a conversation run that ended before its termination
// condition held: either the run was cancelled or a participant's Respond
// failed mid-run. The partial transcript up to the last successfully
// appended message remains available on the run's message stream for
// diagnostics.
type AbortedError struct {
	Team   string // team whose run aborted
	Author string // participant whose turn failed, empty on cancellation
	Turn   int    // 1-indexed agent turn that failed; 0 before the first turn
	Cause  error
}

// Error implements the error interface.
func (e *AbortedError) Error() string {
	if e.Author != "" {
		return fmt.Sprintf("conversation aborted: team %s turn %d (%s): %v", e.Team, e.Turn, e.Author, e.Cause)
	}
	return fmt.Sprintf("conversation aborted: team %s: %v", e.Team, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *AbortedError) Unwrap() error { return e.Cause }
