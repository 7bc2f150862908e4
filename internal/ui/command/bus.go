package command

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/reclamation-control/internal/logging/events"
)

// Handler performs the work of a request and returns the message to feed
// back into the program.
type Handler func(ctx context.Context) tea.Msg

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus coordinates the execution of service calls issued by the UI.
type Bus struct {
	timeout time.Duration
}

// DefaultTimeout bounds a single service call.
const DefaultTimeout = 10 * time.Second

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{timeout: DefaultTimeout}
}

// WithTimeout returns a bus whose requests are cancelled after d. Zero
// disables the bound.
func (b *Bus) WithTimeout(d time.Duration) *Bus {
	return &Bus{timeout: d}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		runCtx := ctx
		if b != nil && b.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}
		msg := req.Handler(runCtx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
