// Package console renders a team's lazy message stream incrementally to a
// writer, one message at a time in append order. It satisfies the sink
// contract: messages are consumed as they arrive, so a conversation can be
// followed live while the run is still producing turns.
package console
