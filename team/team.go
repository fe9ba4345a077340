package team

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
	"github.com/hupe1980/agentchat/termination"
)

// Options configures a RoundRobin team.
type Options struct {
	// Termination decides after every appended message whether the run must
	// stop. Nil means the run is bounded only by MaxTurns.
	Termination termination.Condition

	// MaxTurns bounds the number of agent turns per run. Zero stops a run
	// immediately after the task message; negative means unbounded.
	MaxTurns int

	// BufferSize sets the message channel buffer. A slow consumer delays
	// subsequent turns once the buffer fills, since turns are sequential.
	BufferSize int

	// Logger receives structured run and turn records (defaults to NoOp).
	Logger logging.Logger
}

// RoundRobin drives a fixed ordered participant list through strictly
// serialized turns against a shared transcript. The participant list is
// fixed at construction; no dynamic add/remove mid-run.
type RoundRobin struct {
	name         string
	participants []core.Agent
	cond         termination.Condition
	maxTurns     int
	bufferSize   int
	logger       logging.Logger
}

// NewRoundRobin creates a round-robin team. Participant names must be unique
// within the team and must not collide with the synthetic user identity.
// Defaults: no termination condition, unbounded turns, buffer of 16.
func NewRoundRobin(name string, participants []core.Agent, optFns ...func(o *Options)) (*RoundRobin, error) {
	opts := Options{
		MaxTurns:   -1,
		BufferSize: 16,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	seen := map[string]struct{}{core.UserSource: {}}
	for _, p := range participants {
		if _, dup := seen[p.Name()]; dup {
			return nil, fmt.Errorf("team %s: duplicate or reserved participant name %q", name, p.Name())
		}
		seen[p.Name()] = struct{}{}
	}

	return &RoundRobin{
		name:         name,
		participants: participants,
		cond:         opts.Termination,
		maxTurns:     opts.MaxTurns,
		bufferSize:   opts.BufferSize,
		logger:       opts.Logger,
	}, nil
}

// Name returns the team's name.
func (t *RoundRobin) Name() string { return t.name }

// Participants returns a copy of the ordered participant list.
func (t *RoundRobin) Participants() []core.Agent {
	out := make([]core.Agent, len(t.participants))
	copy(out, t.participants)
	return out
}

// Run starts a fresh conversation seeded with task and returns the lazy
// message stream plus an error channel. Each message is delivered in append
// order as soon as it is produced; both channels close when the run ends.
// A non-nil value on the error channel is a *core.AbortedError and means the
// run unwound before its termination condition held; messages already
// delivered remain valid for inspection.
//
// The stream is not restartable. Calling Run again starts a brand-new
// transcript from turn zero with the same participants and fresh
// termination state.
func (t *RoundRobin) Run(ctx context.Context, task string) (<-chan core.Message, <-chan error) {
	msgCh := make(chan core.Message, t.bufferSize)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		defer close(errCh)

		start := time.Now()
		transcript := core.NewTranscript()

		// A ChatLogger gets cloned with run identity so every record of this
		// run carries the same team and run_id attributes.
		logger := t.logger
		chatLogger, hasChatLogger := t.logger.(*logging.ChatLogger)
		if hasChatLogger {
			chatLogger = chatLogger.WithRun(t.name, core.NewID())
			logger = chatLogger
		}

		finish := func(err error) {
			if hasChatLogger {
				chatLogger.LogRun(t.name, transcript.Len(), time.Since(start), err == nil, err)
				return
			}
			if err == nil {
				logger.Info("run terminated", "team", t.name, "messages", transcript.Len(), "duration", time.Since(start))
			}
		}

		abort := func(author string, turn int, cause error) {
			err := &core.AbortedError{Team: t.name, Author: author, Turn: turn, Cause: cause}
			if hasChatLogger {
				chatLogger.Error("run aborted", "turn", turn, "author", author, "error", cause)
			} else {
				logger.Error("run aborted", "team", t.name, "turn", turn, "author", author, "error", cause)
			}
			finish(err)
			errCh <- err
		}

		emit := func(msg core.Message) bool {
			select {
			case msgCh <- msg:
				return true
			case <-ctx.Done():
				abort("", msg.Sequence, ctx.Err())
				return false
			}
		}

		// Turn 0: the task, authored by the synthetic user identity.
		taskMsg := transcript.Append(core.NewUserMessage(task))
		if !emit(taskMsg) {
			return
		}
		if t.terminated(transcript.Messages()) {
			finish(nil)
			return
		}

		if len(t.participants) == 0 {
			finish(nil)
			return
		}

		for turn := 0; t.maxTurns < 0 || turn < t.maxTurns; turn++ {
			if err := ctx.Err(); err != nil {
				abort("", turn, err)
				return
			}

			participant := t.participants[turn%len(t.participants)]

			turnStart := time.Now()
			reply, err := participant.Respond(ctx, transcript.Messages())
			if err != nil {
				abort(participant.Name(), turn+1, err)
				return
			}

			msg := transcript.Append(reply)
			if hasChatLogger {
				chatLogger.LogTurn(participant.Name(), msg.Sequence, time.Since(turnStart))
			} else {
				logger.Debug("turn completed", "team", t.name, "author", participant.Name(), "sequence", msg.Sequence, "duration", time.Since(turnStart))
			}

			if !emit(msg) {
				return
			}
			if t.terminated(transcript.Messages()) {
				break
			}
		}

		finish(nil)
	}()

	return msgCh, errCh
}

// RunSync runs the team to completion, draining the stream, and returns the
// full transcript in append order. On abort it returns the messages
// delivered so far together with the *core.AbortedError.
func (t *RoundRobin) RunSync(ctx context.Context, task string) ([]core.Message, error) {
	msgCh, errCh := t.Run(ctx, task)

	var messages []core.Message
	for msgCh != nil || errCh != nil {
		select {
		case msg, ok := <-msgCh:
			if !ok {
				msgCh = nil
				continue
			}
			messages = append(messages, msg)

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				// Drain remaining messages so the partial transcript is complete.
				if msgCh != nil {
					for msg := range msgCh {
						messages = append(messages, msg)
					}
				}
				return messages, err
			}
		}
	}

	return messages, nil
}

func (t *RoundRobin) terminated(transcript []core.Message) bool {
	return t.cond != nil && t.cond.Evaluate(transcript)
}
