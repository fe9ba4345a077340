package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
	"github.com/hupe1980/agentchat/model"
	"github.com/hupe1980/agentchat/team"
)

// DefaultSummaryInstruction is the persona used to collapse an inner
// conversation into a single outer-facing message.
const DefaultSummaryInstruction = "You are given an internal conversation between collaborating agents. " +
	"Produce a single response that conveys the conversation's final answer " +
	"as if it came from one participant. Do not mention the internal agents " +
	"or the deliberation process."

// SocietyOfMindOptions configures a SocietyOfMind instance.
type SocietyOfMindOptions struct {
	// Description is a short human-readable summary of the agent's purpose.
	Description string

	// Instruction overrides the summary persona used to collapse the inner
	// conversation.
	Instruction string

	// Logger receives per-turn records (defaults to NoOp).
	Logger logging.Logger
}

// SocietyOfMind is a composite participant: it exclusively owns an inner
// team and, when asked to respond, runs that team to its own termination,
// then collapses the inner transcript into exactly one summary message
// authored under this agent's identity.
//
// The outer scheduler sees an opaque single-turn participant; it never
// learns the inner team's turn count, and the inner transcript is discarded
// once the summary is produced. The inner team's termination condition and
// turn bound are fully independent of the outer team's.
type SocietyOfMind struct {
	name        string
	description string
	instruction string
	inner       *team.RoundRobin
	llm         model.Model
	logger      logging.Logger
}

// NewSocietyOfMind creates a composite agent wrapping inner. The inner team
// must not be shared with, or reachable from, any other participant; the
// composite takes exclusive ownership.
func NewSocietyOfMind(name string, inner *team.RoundRobin, llm model.Model, optFns ...func(o *SocietyOfMindOptions)) *SocietyOfMind {
	opts := SocietyOfMindOptions{
		Description: fmt.Sprintf("Society of mind over team %s", inner.Name()),
		Instruction: DefaultSummaryInstruction,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &SocietyOfMind{
		name:        name,
		description: opts.Description,
		instruction: opts.Instruction,
		inner:       inner,
		llm:         llm,
		logger:      opts.Logger,
	}
}

// Name implements core.Agent.
func (s *SocietyOfMind) Name() string { return s.name }

// Description implements core.Agent.
func (s *SocietyOfMind) Description() string { return s.description }

// Respond implements core.Agent. The outer transcript's most recent content
// seeds the inner run; the inner conversation runs to its own termination
// and is then summarized by a dedicated backend call. An inner abort or a
// failing summary call propagates as this turn's error.
func (s *SocietyOfMind) Respond(ctx context.Context, transcript []core.Message) (core.Message, error) {
	var task string
	if len(transcript) > 0 {
		task = transcript[len(transcript)-1].Content
	}

	start := time.Now()
	inner, err := s.inner.RunSync(ctx, task)
	if err != nil {
		return core.Message{}, fmt.Errorf("inner team %s: %w", s.inner.Name(), err)
	}
	s.logger.Debug("inner run finished", "agent", s.name, "team", s.inner.Name(), "messages", len(inner), "duration", time.Since(start))

	req := model.Request{
		Instructions: s.instruction,
		Messages: []model.Message{
			{Role: core.RoleUser, Content: renderConversation(inner)},
		},
	}

	text, err := model.Collect(ctx, s.llm, req)
	if err != nil {
		return core.Message{}, fmt.Errorf("summarizing inner team %s: %w", s.inner.Name(), err)
	}

	return core.NewMessage(s.name, core.RoleAssistant, text), nil
}

// renderConversation flattens the inner transcript into labeled lines. The
// seeded task message is skipped; it duplicates content the outer
// conversation already holds.
func renderConversation(messages []core.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		if msg.Source == core.UserSource {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", msg.Source, msg.Content)
	}
	return b.String()
}
