package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hupe1980/agentchat/core"
)

// Options configures a Console sink.
type Options struct {
	// Writer receives the rendered transcript (defaults to os.Stdout).
	Writer io.Writer

	// RuleWidth sets the width of the separator drawn between messages.
	RuleWidth int

	// NoStyles disables lipgloss styling, emitting plain text only.
	NoStyles bool
}

// Console consumes a run's message stream and renders each message as it
// arrives. Rendering happens on the caller's goroutine, so a slow writer
// delays subsequent turns; this is by design, turns are sequential.
type Console struct {
	w         io.Writer
	ruleWidth int

	sourceStyle lipgloss.Style
	seqStyle    lipgloss.Style
	ruleStyle   lipgloss.Style
}

// New creates a Console sink.
func New(optFns ...func(o *Options)) *Console {
	opts := Options{
		Writer:    os.Stdout,
		RuleWidth: 72,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Console{
		w:         opts.Writer,
		ruleWidth: opts.RuleWidth,
	}
	if !opts.NoStyles {
		c.sourceStyle = lipgloss.NewStyle().Bold(true)
		c.seqStyle = lipgloss.NewStyle().Faint(true)
		c.ruleStyle = lipgloss.NewStyle().Faint(true)
	}
	return c
}

// Render drains the message and error channels of a run, writing each
// message in order, and returns the collected transcript. A non-nil error is
// the run's terminal error; messages rendered before the abort are still
// returned.
func (c *Console) Render(ctx context.Context, msgCh <-chan core.Message, errCh <-chan error) ([]core.Message, error) {
	var messages []core.Message
	var runErr error

	for msgCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return messages, ctx.Err()

		case msg, ok := <-msgCh:
			if !ok {
				msgCh = nil
				continue
			}
			c.write(msg)
			messages = append(messages, msg)

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				runErr = err
			}
		}
	}

	return messages, runErr
}

func (c *Console) write(msg core.Message) {
	header := fmt.Sprintf("%s %s",
		c.sourceStyle.Render("["+msg.Source+"]"),
		c.seqStyle.Render(fmt.Sprintf("#%d", msg.Sequence)),
	)
	rule := c.ruleStyle.Render(strings.Repeat("─", c.ruleWidth))

	fmt.Fprintf(c.w, "%s\n%s\n%s\n", header, msg.Content, rule)
}
