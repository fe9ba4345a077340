package termination

import (
	"fmt"
	"testing"

	"github.com/hupe1980/agentchat/core"
	"github.com/stretchr/testify/assert"
)

func transcriptOf(contents ...string) []core.Message {
	msgs := make([]core.Message, 0, len(contents))
	for i, content := range contents {
		msg := core.NewMessage("Agent", core.RoleAssistant, content)
		msg.Sequence = i
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestMaxMessages(t *testing.T) {
	cond := MaxMessages(3)

	assert.False(t, cond.Evaluate(nil))
	assert.False(t, cond.Evaluate(transcriptOf("a", "b")))
	assert.True(t, cond.Evaluate(transcriptOf("a", "b", "c")))
	assert.True(t, cond.Evaluate(transcriptOf("a", "b", "c", "d")))
}

func TestMaxMessages_One(t *testing.T) {
	// Holds as soon as the task message alone is present.
	cond := MaxMessages(1)

	assert.False(t, cond.Evaluate(nil))
	assert.True(t, cond.Evaluate(transcriptOf("task")))
}

func TestTextMention(t *testing.T) {
	cond := TextMention("APPROVE")

	assert.False(t, cond.Evaluate(transcriptOf("looks good")))
	assert.True(t, cond.Evaluate(transcriptOf("guidance", "APPROVE")))
	// Any message in the transcript counts, not just the latest.
	assert.True(t, cond.Evaluate(transcriptOf("APPROVE", "followup")))
	// Case-sensitive exact substring.
	assert.False(t, cond.Evaluate(transcriptOf("approve")))
	assert.True(t, cond.Evaluate(transcriptOf("I APPROVE this")))
}

func TestOr(t *testing.T) {
	cond := Or(TextMention("APPROVE"), MaxMessages(4))

	assert.False(t, cond.Evaluate(transcriptOf("a", "b")))
	assert.True(t, cond.Evaluate(transcriptOf("a", "APPROVE")))
	assert.True(t, cond.Evaluate(transcriptOf("a", "b", "c", "d")))
}

func TestAnd(t *testing.T) {
	cond := And(TextMention("APPROVE"), MaxMessages(3))

	assert.False(t, cond.Evaluate(transcriptOf("APPROVE")))
	assert.False(t, cond.Evaluate(transcriptOf("a", "b", "c")))
	assert.True(t, cond.Evaluate(transcriptOf("a", "b", "APPROVE")))
}

func TestOr_NeverLaterThanLeaf(t *testing.T) {
	or := Or(MaxMessages(3), TextMention("DONE"))
	and := And(MaxMessages(3), TextMention("DONE"))

	// The first snapshot where either leaf holds must satisfy Or.
	snapshot := transcriptOf("a", "DONE")
	assert.True(t, or.Evaluate(snapshot))
	assert.False(t, and.Evaluate(snapshot))

	// Once both leaves hold, And follows.
	snapshot = transcriptOf("a", "b", "DONE")
	assert.True(t, or.Evaluate(snapshot))
	assert.True(t, and.Evaluate(snapshot))
}

func TestNestedCombinators(t *testing.T) {
	cond := And(
		MaxMessages(2),
		Or(TextMention("APPROVE"), TextMention("REJECT")),
	)

	assert.False(t, cond.Evaluate(transcriptOf("APPROVE")))
	assert.True(t, cond.Evaluate(transcriptOf("a", "REJECT")))
	assert.True(t, cond.Evaluate(transcriptOf("a", "APPROVE")))
	assert.False(t, cond.Evaluate(transcriptOf("a", "b")))
}

func TestConditions_PureAcrossRuns(t *testing.T) {
	// The same condition value must be reusable across runs without reset:
	// evaluating a terminal snapshot then a fresh one yields independent
	// results.
	cond := Or(TextMention("APPROVE"), MaxMessages(6))

	terminal := transcriptOf("a", "APPROVE")
	assert.True(t, cond.Evaluate(terminal))

	fresh := transcriptOf("new task")
	assert.False(t, cond.Evaluate(fresh))

	// Repeated evaluation of the same snapshot is stable.
	for i := 0; i < 3; i++ {
		assert.True(t, cond.Evaluate(terminal), fmt.Sprintf("iteration %d", i))
	}
}
