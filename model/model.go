package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentchat/core"
)

// Message is a single normalized chat message handed to a provider adapter.
// Role is one of core.RoleUser, core.RoleAssistant or core.RoleSystem.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request captures the normalized model input produced by agents: a fixed
// persona instruction plus the conversation rendered as chat messages.
type Request struct {
	Instructions string    `json:"instructions"`
	Messages     []Message `json:"messages"`
	Stream       bool      `json:"stream,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a model. Partial chunks
// carry incremental text deltas; the final chunk carries the full
// accumulated text and a finish reason.
type Response struct {
	Partial      bool        `json:"partial"`
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason,omitempty"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to turn a transcript plus persona
// into new text. Adapters report failures (auth, quota, network, malformed
// response) on the error channel as *core.BackendError.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// CollectResponse drains a Generate stream and returns the final response
// chunk. Partial chunks are discarded, the first error wins, and a stream
// that closes without a final chunk is reported as a malformed response.
func CollectResponse(ctx context.Context, m Model, req Request) (Response, error) {
	respCh, errCh := m.Generate(ctx, req)

	var final Response
	sawFinal := false
	for respCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()

		case resp, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			if !resp.Partial {
				final = resp
				sawFinal = true
			}

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return Response{}, err
			}
		}
	}

	if !sawFinal {
		info := m.Info()
		return Response{}, &core.BackendError{
			Provider: info.Provider,
			Model:    info.Name,
			Cause:    fmt.Errorf("stream closed without a final response"),
		}
	}

	return final, nil
}

// Collect is the synchronous helper agents use when they only need the
// finished completion text.
func Collect(ctx context.Context, m Model, req Request) (string, error) {
	resp, err := CollectResponse(ctx, m, req)
	return resp.Text, err
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// It answers with canned responses matched against the last message content,
// falls back to a scripted sequence consumed one reply per call, and can be
// made to fail deterministically.
type MockModel struct {
	info      Info
	responses map[string]string
	script    []string
	cursor    int
	err       error
}

// NewMockModel constructs a MockModel identified by name.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Script sets a reply sequence consumed one entry per Generate call once
// canned responses do not match. The last entry repeats when exhausted.
func (m *MockModel) Script(replies ...string) { m.script = replies; m.cursor = 0 }

// FailWith makes every subsequent Generate call report err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Generate implements Model; emits optional streaming char chunks then the final response.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)

		if m.err != nil {
			errCh <- m.err
			return
		}

		full := m.nextReply(req)
		if req.Stream {
			for _, r := range full {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{Partial: true, Text: string(r)}:
				}
			}
		}
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- Response{Text: full, FinishReason: "stop"}:
		}
	}()

	return respCh, errCh
}

func (m *MockModel) nextReply(req Request) string {
	var input string
	if len(req.Messages) > 0 {
		input = req.Messages[len(req.Messages)-1].Content
	}
	if reply, ok := m.responses[input]; ok {
		return reply
	}
	if len(m.script) > 0 {
		reply := m.script[min(m.cursor, len(m.script)-1)]
		m.cursor++
		return reply
	}
	return fmt.Sprintf("Mock response to: %s", input)
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
