// Package agent provides the built-in conversation participants: Assistant,
// a leaf agent forwarding the transcript plus a fixed persona to a reasoning
// backend, and SocietyOfMind, a composite agent that runs a whole nested
// team to termination and contributes only a single collapsed summary
// message per outer turn.
//
// Both implement core.Agent; the scheduler never depends on the concrete
// type.
package agent
