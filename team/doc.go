// Package team implements the turn-taking scheduler driving a fixed ordered
// set of agents through a shared transcript until a termination condition
// holds. RoundRobin is the only scheduling policy: participants take turns
// in construction order, wrapping to the first after the last, with no
// priority or interrupt scheme.
//
// Run streams each message lazily as it is appended, so a consumer can
// render the conversation incrementally; RunSync drains the stream for
// request-response usage. A team value is reusable: every Run starts a
// fresh transcript and fresh termination state.
package team
