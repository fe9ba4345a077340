// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. It also offers a richer ChatLogger with contextual
// helpers (team, run, component) and domain specific helpers for turns,
// backend calls and runs.
package logging
