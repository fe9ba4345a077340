// Package termination provides the condition algebra deciding when a
// conversation run stops. Leaf conditions (MaxMessages, TextMention) and the
// Or/And combinators all implement the same Condition interface, so
// arbitrary boolean trees are expressible:
//
//	cond := termination.Or(
//		termination.TextMention("APPROVE"),
//		termination.MaxMessages(6),
//	)
//
// Conditions are pure functions of the transcript snapshot: they hold no
// hidden counters and can be shared across runs without reset.
package termination
