package termination

import (
	"strings"

	"github.com/hupe1980/agentchat/core"
)

// Condition is a predicate over a transcript snapshot deciding whether a
// conversation run must stop. The scheduler evaluates it after every
// appended message, including the initial task.
//
// Evaluate must be a pure function of the snapshot so the same condition
// value can be reused across independent runs.
type Condition interface {
	Evaluate(transcript []core.Message) bool
}

// maxMessages stops once the transcript holds at least n messages.
type maxMessages struct {
	n int
}

// MaxMessages returns a condition that is true once the transcript length
// reaches n. The task message counts, so MaxMessages(1) holds before any
// agent turn is scheduled.
func MaxMessages(n int) Condition { return &maxMessages{n: n} }

// Evaluate implements Condition.
func (c *maxMessages) Evaluate(transcript []core.Message) bool {
	return len(transcript) >= c.n
}

// textMention stops once any message mentions a keyword.
type textMention struct {
	keyword string
}

// TextMention returns a condition that is true once any message's content
// contains keyword as a case-sensitive substring. The whole transcript is
// scanned, not just the latest message, so the condition is robust to
// snapshots arriving in any state.
func TextMention(keyword string) Condition { return &textMention{keyword: keyword} }

// Evaluate implements Condition.
func (c *textMention) Evaluate(transcript []core.Message) bool {
	for _, msg := range transcript {
		if strings.Contains(msg.Content, c.keyword) {
			return true
		}
	}
	return false
}

// orCondition is the short-circuiting disjunction of its children.
type orCondition struct {
	children []Condition
}

// Or returns a condition that is true when any child condition is true.
// Evaluation short-circuits on the first true child.
func Or(children ...Condition) Condition { return &orCondition{children: children} }

// Evaluate implements Condition.
func (c *orCondition) Evaluate(transcript []core.Message) bool {
	for _, child := range c.children {
		if child.Evaluate(transcript) {
			return true
		}
	}
	return false
}

// andCondition is the short-circuiting conjunction of its children.
type andCondition struct {
	children []Condition
}

// And returns a condition that is true only when every child condition is
// true. Evaluation short-circuits on the first false child. And() with no
// children is vacuously true.
func And(children ...Condition) Condition { return &andCondition{children: children} }

// Evaluate implements Condition.
func (c *andCondition) Evaluate(transcript []core.Message) bool {
	for _, child := range c.children {
		if !child.Evaluate(transcript) {
			return false
		}
	}
	return true
}
