package team

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
	"github.com/hupe1980/agentchat/termination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAgent answers deterministically via a reply function receiving the
// 1-indexed count of this agent's own turns.
type stubAgent struct {
	name  string
	turns int
	reply func(turn int, transcript []core.Message) (string, error)
}

func newStubAgent(name, fixedReply string) *stubAgent {
	return &stubAgent{
		name: name,
		reply: func(int, []core.Message) (string, error) {
			return fixedReply, nil
		},
	}
}

func (a *stubAgent) Name() string        { return a.name }
func (a *stubAgent) Description() string { return "stub agent " + a.name }

func (a *stubAgent) Respond(ctx context.Context, transcript []core.Message) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, err
	}
	a.turns++
	content, err := a.reply(a.turns, transcript)
	if err != nil {
		return core.Message{}, err
	}
	return core.NewMessage(a.name, core.RoleAssistant, content), nil
}

func TestNewRoundRobin_DuplicateNames(t *testing.T) {
	_, err := NewRoundRobin("dup", []core.Agent{
		newStubAgent("Coach", "a"),
		newStubAgent("Coach", "b"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Coach")
}

func TestNewRoundRobin_ReservedUserName(t *testing.T) {
	_, err := NewRoundRobin("reserved", []core.Agent{newStubAgent(core.UserSource, "a")})
	require.Error(t, err)
}

func TestRun_MaxMessagesStopsAfterExactTurns(t *testing.T) {
	// MaxMessages(n) terminates after exactly n-1 agent turns; the task
	// message counts as turn 0.
	for _, n := range []int{2, 3, 5, 8} {
		team, err := NewRoundRobin("bounded", []core.Agent{
			newStubAgent("A", "alpha"),
			newStubAgent("B", "beta"),
		}, func(o *Options) {
			o.Termination = termination.MaxMessages(n)
		})
		require.NoError(t, err)

		messages, err := team.RunSync(context.Background(), "task")
		require.NoError(t, err)
		assert.Len(t, messages, n, fmt.Sprintf("MaxMessages(%d)", n))
	}
}

func TestRun_MaxMessagesOne_ZeroTurnsInvoked(t *testing.T) {
	// The condition already holds once the task is appended, so no agent
	// turn is ever scheduled.
	agent := newStubAgent("A", "alpha")
	team, err := NewRoundRobin("immediate", []core.Agent{agent}, func(o *Options) {
		o.Termination = termination.MaxMessages(1)
	})
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, core.UserSource, messages[0].Source)
	assert.Zero(t, agent.turns)
}

func TestRun_RoundRobinOrderIsExactlyPeriodic(t *testing.T) {
	names := []string{"A", "B", "C"}
	participants := make([]core.Agent, len(names))
	for i, name := range names {
		participants[i] = newStubAgent(name, "reply from "+name)
	}

	team, err := NewRoundRobin("periodic", participants, func(o *Options) {
		o.Termination = termination.MaxMessages(8)
	})
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)
	require.Len(t, messages, 8)

	assert.Equal(t, core.UserSource, messages[0].Source)
	for i, msg := range messages[1:] {
		assert.Equal(t, names[i%3], msg.Source, fmt.Sprintf("turn %d", i+1))
	}
}

func TestRun_SequenceNumbersStrictlyIncrease(t *testing.T) {
	team, err := NewRoundRobin("sequenced", []core.Agent{newStubAgent("A", "alpha")}, func(o *Options) {
		o.Termination = termination.MaxMessages(4)
	})
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)
	for i, msg := range messages {
		assert.Equal(t, i, msg.Sequence)
	}
}

func TestRun_ZeroParticipants(t *testing.T) {
	team, err := NewRoundRobin("empty", nil)
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "task", messages[0].Content)
}

func TestRun_MaxTurnsZero(t *testing.T) {
	agent := newStubAgent("A", "alpha")
	team, err := NewRoundRobin("zero-turns", []core.Agent{agent}, func(o *Options) {
		o.MaxTurns = 0
	})
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Zero(t, agent.turns)
}

func TestRun_MaxTurnsBound(t *testing.T) {
	team, err := NewRoundRobin("two-turns", []core.Agent{
		newStubAgent("A", "alpha"),
		newStubAgent("B", "beta"),
	}, func(o *Options) {
		o.MaxTurns = 2
	})
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "A", messages[1].Source)
	assert.Equal(t, "B", messages[2].Source)
}

func TestRun_ApprovalScenario(t *testing.T) {
	// Coach always answers guidance, Reviewer approves on its first turn:
	// run terminates after exactly 3 messages (task, Coach, Reviewer).
	coach := newStubAgent("Coach", "guidance text")
	reviewer := newStubAgent("Reviewer", "APPROVE")

	team, err := NewRoundRobin("review", []core.Agent{coach, reviewer}, func(o *Options) {
		o.Termination = termination.Or(
			termination.TextMention("APPROVE"),
			termination.MaxMessages(6),
		)
	})
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "please review")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, core.UserSource, messages[0].Source)
	assert.Equal(t, "Coach", messages[1].Source)
	assert.Equal(t, "Reviewer", messages[2].Source)
	assert.Equal(t, "APPROVE", messages[2].Content)
}

func TestRun_AbortOnRespondError(t *testing.T) {
	cause := &core.BackendError{Provider: "mock", Cause: errors.New("timeout")}
	failing := &stubAgent{
		name: "Flaky",
		reply: func(int, []core.Message) (string, error) {
			return "", cause
		},
	}

	team, err := NewRoundRobin("flaky", []core.Agent{newStubAgent("A", "alpha"), failing}, func(o *Options) {
		o.Termination = termination.MaxMessages(10)
	})
	require.NoError(t, err)

	messages, err := team.RunSync(context.Background(), "task")

	var aborted *core.AbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, "Flaky", aborted.Author)
	assert.Equal(t, 2, aborted.Turn)
	assert.ErrorIs(t, err, cause)

	// No partial message from the failing turn; the transcript up to the
	// last successful append is preserved.
	require.Len(t, messages, 2)
	assert.Equal(t, "A", messages[1].Source)
}

func TestRun_StreamDeliversIncrementally(t *testing.T) {
	team, err := NewRoundRobin("streaming", []core.Agent{newStubAgent("A", "alpha")}, func(o *Options) {
		o.Termination = termination.MaxMessages(3)
	})
	require.NoError(t, err)

	msgCh, errCh := team.Run(context.Background(), "task")

	var sequences []int
	for msg := range msgCh {
		sequences = append(sequences, msg.Sequence)
	}
	require.NoError(t, <-errCh)
	assert.Equal(t, []int{0, 1, 2}, sequences)
}

func TestRun_RerunsAreIndependent(t *testing.T) {
	// Running the same team twice with the same task and a deterministic
	// stub produces transcripts of identical length and turn order.
	team, err := NewRoundRobin("rerun", []core.Agent{
		newStubAgent("A", "alpha"),
		newStubAgent("B", "beta"),
	}, func(o *Options) {
		o.Termination = termination.MaxMessages(5)
	})
	require.NoError(t, err)

	first, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)
	second, err := team.RunSync(context.Background(), "task")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Source, second[i].Source)
		assert.Equal(t, first[i].Sequence, second[i].Sequence)
	}
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	blocker := &stubAgent{
		name: "Blocker",
		reply: func(turn int, _ []core.Message) (string, error) {
			if turn >= 2 {
				cancel()
				return "", ctx.Err()
			}
			return "working", nil
		},
	}

	team, err := NewRoundRobin("cancelled", []core.Agent{blocker})
	require.NoError(t, err)

	messages, err := team.RunSync(ctx, "task")

	var aborted *core.AbortedError
	require.ErrorAs(t, err, &aborted)
	assert.ErrorIs(t, err, context.Canceled)

	// Messages appended before cancellation remain inspectable.
	require.GreaterOrEqual(t, len(messages), 2)
	assert.Equal(t, "working", messages[1].Content)
}

func TestRun_ChatLoggerRecords(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultLoggerConfig()
	cfg.Format = "text"
	cfg.Output = &buf

	team, err := NewRoundRobin("review", []core.Agent{newStubAgent("Coach", "guidance")}, func(o *Options) {
		o.Termination = termination.MaxMessages(2)
		o.Logger = logging.NewLogger(cfg)
	})
	require.NoError(t, err)

	_, err = team.RunSync(context.Background(), "task")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="Turn completed"`)
	assert.Contains(t, out, "author=Coach")
	assert.Contains(t, out, `msg="Run completed"`)
	assert.Contains(t, out, "team=review")
	assert.Contains(t, out, "run_id=")
	assert.Contains(t, out, "message_count=2")
	// Records carry attributes, never printf-mangled messages.
	assert.NotContains(t, out, "EXTRA")
	assert.NotContains(t, out, "%!")
}

func TestRun_ChatLoggerRecordsAbort(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultLoggerConfig()
	cfg.Format = "text"
	cfg.Output = &buf

	flaky := &stubAgent{
		name: "Flaky",
		reply: func(int, []core.Message) (string, error) {
			return "", errors.New("backend down")
		},
	}

	team, err := NewRoundRobin("review", []core.Agent{flaky}, func(o *Options) {
		o.Logger = logging.NewLogger(cfg)
	})
	require.NoError(t, err)

	_, err = team.RunSync(context.Background(), "task")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="run aborted"`)
	assert.Contains(t, out, "author=Flaky")
	assert.Contains(t, out, `msg="Run aborted"`)
	assert.Contains(t, out, "success=false")
	assert.NotContains(t, out, "EXTRA")
}
