package command

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ deadline bool }

func TestExecuteRunsHandler(t *testing.T) {
	bus := New()
	calls := 0
	cmd := bus.Execute(context.Background(), Request{ID: "x", Label: "test", Handler: func(ctx context.Context) tea.Msg {
		calls++
		_, ok := ctx.Deadline()
		return doneMsg{deadline: ok}
	}})
	if calls != 0 {
		t.Fatalf("expected handler deferred until the command runs")
	}
	msg, ok := cmd().(doneMsg)
	if !ok || calls != 1 {
		t.Fatalf("expected handler result, got %#v", msg)
	}
	if !msg.deadline {
		t.Fatalf("expected default timeout applied")
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	if msg := New().Execute(context.Background(), Request{ID: "x"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}

func TestWithTimeoutZeroDisablesDeadline(t *testing.T) {
	bus := New().WithTimeout(0)
	msg := bus.Execute(context.Background(), Request{Handler: func(ctx context.Context) tea.Msg {
		_, ok := ctx.Deadline()
		return doneMsg{deadline: ok}
	}})()
	if msg.(doneMsg).deadline {
		t.Fatalf("expected no deadline")
	}
	bus = New().WithTimeout(time.Millisecond)
	msg = bus.Execute(context.Background(), Request{Handler: func(ctx context.Context) tea.Msg {
		<-ctx.Done()
		return doneMsg{deadline: true}
	}})()
	if !msg.(doneMsg).deadline {
		t.Fatalf("expected handler to observe cancellation")
	}
}
