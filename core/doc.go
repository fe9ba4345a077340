// Package core defines the shared vocabulary of AgentChat: the immutable
// Message value, the append-only Transcript recording one conversation run,
// the Agent interface every participant implements, and the error taxonomy
// (BackendError, ConfigurationError, AbortedError) that schedulers and
// reasoning backends agree on.
//
// Higher layers (team, agent, termination, console) depend only on this
// package; it in turn depends on nothing but the standard library and a
// UUID generator.
package core
