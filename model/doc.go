// Package model defines the reasoning-backend abstraction agents depend on:
// a normalized chat Request, streaming Response chunks and the Model
// interface implemented by provider adapters (see model/openai and
// model/anthropic). A deterministic MockModel is included for tests and
// examples.
package model
