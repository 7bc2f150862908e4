package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/reclamation-control/internal/complaint"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindComplaints Kind = iota
	KindStats
)

func (k Kind) String() string {
	switch k {
	case KindComplaints:
		return "complaints"
	case KindStats:
		return "stats"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Source is the read side of the complaint service the watcher polls.
type Source interface {
	List(ctx context.Context, q complaint.Query) ([]complaint.Complaint, error)
	Stats(ctx context.Context) (complaint.Stats, error)
}

// Watcher polls the complaint service at a fixed interval and publishes
// events.
type Watcher struct {
	source   Source
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events   chan Event
	triggers []chan struct{}
	wg       sync.WaitGroup
}

// DefaultInterval is used when NewWatcher is given a non-positive interval.
const DefaultInterval = 2 * time.Second

// NewWatcher creates a backend watcher that polls source every interval.
func NewWatcher(source Source, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startComplaintPoller()
	w.startStatsPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Refresh asks every poller to fetch again without waiting for the next
// tick. Pending requests are coalesced.
func (w *Watcher) Refresh() {
	for _, trigger := range w.triggers {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startComplaintPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.start(KindComplaints, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return w.source.List(ctx, complaint.Query{})
	})
}

func (w *Watcher) startStatsPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.start(KindStats, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return w.source.Stats(ctx)
	})
}

func (w *Watcher) start(kind Kind, fetch func(context.Context) (interface{}, error)) {
	trigger := make(chan struct{}, 1)
	w.triggers = append(w.triggers, trigger)
	w.wg.Add(1)
	go w.poll(kind, trigger, fetch)
}

func (w *Watcher) poll(kind Kind, trigger <-chan struct{}, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case <-trigger:
			if !emit() {
				return
			}
		}
	}
}
