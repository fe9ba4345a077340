package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
	"github.com/hupe1980/agentchat/model"
)

// AssistantOptions configures an Assistant instance.
//
// Use functional options with NewAssistant to override defaults.
type AssistantOptions struct {
	// Description is a short human-readable summary of the agent's purpose.
	Description string

	// EnableStreaming requests partial chunks from the backend. The final
	// accumulated text is used either way; streaming only affects latency
	// characteristics of the underlying call.
	EnableStreaming bool

	// Logger receives per-call records (defaults to NoOp).
	Logger logging.Logger
}

// Assistant is a leaf participant: it forwards the transcript plus its fixed
// persona instruction to the reasoning backend and wraps the returned text
// as a single message. The backend handle is shared and read-only; an
// Assistant keeps no per-run mutable state and can be reused across
// independent runs.
type Assistant struct {
	name        string
	description string
	instruction string
	llm         model.Model
	stream      bool
	logger      logging.Logger
}

// NewAssistant creates an assistant named name with the given persona
// instruction, backed by llm.
func NewAssistant(name, instruction string, llm model.Model, optFns ...func(o *AssistantOptions)) *Assistant {
	opts := AssistantOptions{
		Description: fmt.Sprintf("Assistant %s", name),
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Assistant{
		name:        name,
		description: opts.Description,
		instruction: instruction,
		llm:         llm,
		stream:      opts.EnableStreaming,
		logger:      opts.Logger,
	}
}

// Name implements core.Agent.
func (a *Assistant) Name() string { return a.name }

// Description implements core.Agent.
func (a *Assistant) Description() string { return a.description }

// Respond implements core.Agent. Failures from the backend (auth, quota,
// network, malformed response) are returned as *core.BackendError; the
// enclosing team aborts the run on any such error.
func (a *Assistant) Respond(ctx context.Context, transcript []core.Message) (core.Message, error) {
	req := model.Request{
		Instructions: a.instruction,
		Messages:     a.buildMessages(transcript),
		Stream:       a.stream,
	}

	start := time.Now()
	resp, err := model.CollectResponse(ctx, a.llm, req)
	a.logCall(resp, time.Since(start), err)
	if err != nil {
		return core.Message{}, a.asBackendError(err)
	}

	return core.NewMessage(a.name, core.RoleAssistant, resp.Text), nil
}

// logCall records the backend call outcome. A ChatLogger gets the structured
// call record including token usage; any other logger gets plain records.
func (a *Assistant) logCall(resp model.Response, dur time.Duration, err error) {
	if cl, ok := a.logger.(*logging.ChatLogger); ok {
		tokens := 0
		if resp.Usage != nil {
			tokens = resp.Usage.TotalTokens
		}
		cl.LogBackendCall(a.llm.Info().Name, tokens, dur, err == nil, err)
		return
	}
	if err != nil {
		a.logger.Error("completion failed", "agent", a.name, "model", a.llm.Info().Name, "error", err)
		return
	}
	a.logger.Debug("completion succeeded", "agent", a.name, "model", a.llm.Info().Name, "duration", dur)
}

// buildMessages renders the shared transcript from this agent's point of
// view: its own messages keep the assistant role, the task keeps the user
// role, and every other participant's message becomes a user-role message
// prefixed with its source so the backend can tell speakers apart.
func (a *Assistant) buildMessages(transcript []core.Message) []model.Message {
	messages := make([]model.Message, 0, len(transcript))
	for _, msg := range transcript {
		switch msg.Source {
		case a.name:
			messages = append(messages, model.Message{Role: core.RoleAssistant, Content: msg.Content})
		case core.UserSource:
			messages = append(messages, model.Message{Role: core.RoleUser, Content: msg.Content})
		default:
			messages = append(messages, model.Message{
				Role:    core.RoleUser,
				Content: fmt.Sprintf("%s: %s", msg.Source, msg.Content),
			})
		}
	}
	return messages
}

// asBackendError normalizes backend failures: cancellation passes through
// untouched, adapter-tagged errors keep their detail, anything else is
// wrapped with this agent's backend identity.
func (a *Assistant) asBackendError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var backendErr *core.BackendError
	if errors.As(err, &backendErr) {
		return err
	}
	info := a.llm.Info()
	return &core.BackendError{Provider: info.Provider, Model: info.Name, Cause: err}
}
