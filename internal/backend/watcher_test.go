package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/reclamation-control/internal/complaint"
)

type fakeSource struct {
	lists   atomic.Int32
	listErr error
}

func (f *fakeSource) List(context.Context, complaint.Query) ([]complaint.Complaint, error) {
	f.lists.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []complaint.Complaint{{ID: "a", Title: "Late bus"}}, nil
}

func (f *fakeSource) Stats(context.Context) (complaint.Stats, error) {
	return complaint.Stats{Total: 1}, nil
}

func nextEvent(t *testing.T, w *Watcher, kind Kind) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed")
			}
			if evt.Kind == kind {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", kind)
		}
	}
}

func TestWatcherEmitsInitialSnapshots(t *testing.T) {
	src := &fakeSource{}
	w := NewWatcher(src, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w, KindComplaints)
	items, ok := evt.Data.([]complaint.Complaint)
	if evt.Err != nil || !ok || len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("unexpected complaints event %#v", evt)
	}
	evt = nextEvent(t, w, KindStats)
	if stats, ok := evt.Data.(complaint.Stats); !ok || stats.Total != 1 {
		t.Fatalf("unexpected stats event %#v", evt)
	}
}

func TestWatcherRefreshPollsImmediately(t *testing.T) {
	src := &fakeSource{}
	w := NewWatcher(src, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	nextEvent(t, w, KindComplaints)
	w.Refresh()
	nextEvent(t, w, KindComplaints)
	if got := src.lists.Load(); got < 2 {
		t.Fatalf("expected a second fetch after Refresh, got %d", got)
	}
}

func TestWatcherReportsErrors(t *testing.T) {
	src := &fakeSource{listErr: errors.New("disk full")}
	w := NewWatcher(src, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w, KindComplaints)
	if evt.Err == nil || evt.Err.Error() != "disk full" {
		t.Fatalf("expected error event, got %#v", evt)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(&fakeSource{}, time.Hour)
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}
