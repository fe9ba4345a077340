// Package agentchat provides a high-level façade for building coordinated
// multi-agent conversations: a shared reasoning-backend handle, assistants
// with fixed personas, round-robin teams with composable termination
// conditions, and society-of-mind agents that embed a whole team as a single
// participant of a larger one. Most applications interact with this package
// by:
//  1. Creating an AgentChat via New() around one backend model handle
//  2. Building assistants and teams from it
//  3. Running a team and consuming the resulting message stream
//
// The façade only wires construction defaults (shared model, logger); all
// orchestration lives in the team package. The model handle's lifecycle is
// owned by the process entry point, not by any agent or team.
package agentchat

import (
	"github.com/hupe1980/agentchat/agent"
	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
	"github.com/hupe1980/agentchat/model"
	"github.com/hupe1980/agentchat/team"
)

// Options configures the AgentChat instance.
type Options struct {
	// Logger is passed to every constructed agent and team (defaults to NoOp).
	Logger logging.Logger
}

// AgentChat bundles the shared, read-only backend handle with construction
// defaults so a whole group of agents can be built from one place.
type AgentChat struct {
	llm    model.Model
	logger logging.Logger
}

// New creates a new AgentChat façade around a shared model handle.
func New(llm model.Model, optFns ...func(o *Options)) *AgentChat {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &AgentChat{llm: llm, logger: opts.Logger}
}

// Model returns the shared backend handle.
func (c *AgentChat) Model() model.Model { return c.llm }

// componentLogger scopes the shared logger to a component when it supports
// contextual cloning, so agent and team records are distinguishable.
func (c *AgentChat) componentLogger(component string) logging.Logger {
	if cl, ok := c.logger.(*logging.ChatLogger); ok {
		return cl.WithComponent(component)
	}
	return c.logger
}

// NewAssistant builds a leaf assistant sharing the façade's model and logger.
func (c *AgentChat) NewAssistant(name, instruction string, optFns ...func(o *agent.AssistantOptions)) *agent.Assistant {
	fns := append([]func(o *agent.AssistantOptions){func(o *agent.AssistantOptions) {
		o.Logger = c.componentLogger("agent")
	}}, optFns...)
	return agent.NewAssistant(name, instruction, c.llm, fns...)
}

// NewSocietyOfMind builds a composite agent wrapping inner, sharing the
// façade's model for the collapsing summary call.
func (c *AgentChat) NewSocietyOfMind(name string, inner *team.RoundRobin, optFns ...func(o *agent.SocietyOfMindOptions)) *agent.SocietyOfMind {
	fns := append([]func(o *agent.SocietyOfMindOptions){func(o *agent.SocietyOfMindOptions) {
		o.Logger = c.componentLogger("agent")
	}}, optFns...)
	return agent.NewSocietyOfMind(name, inner, c.llm, fns...)
}

// NewTeam builds a round-robin team over participants with the façade's logger.
func (c *AgentChat) NewTeam(name string, participants []core.Agent, optFns ...func(o *team.Options)) (*team.RoundRobin, error) {
	fns := append([]func(o *team.Options){func(o *team.Options) {
		o.Logger = c.componentLogger("team")
	}}, optFns...)
	return team.NewRoundRobin(name, participants, fns...)
}
