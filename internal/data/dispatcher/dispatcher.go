package dispatcher

import (
	"github.com/atomicstack/reclamation-control/internal/backend"
	"github.com/atomicstack/reclamation-control/internal/complaint"
	"github.com/atomicstack/reclamation-control/internal/state"
)

type Result struct {
	ComplaintsUpdated bool
	StatsUpdated      bool
}

type Dispatcher struct {
	complaints state.ComplaintStore
}

func New(c state.ComplaintStore) *Dispatcher {
	return &Dispatcher{complaints: c}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindComplaints:
		if entries, ok := evt.Data.([]complaint.Complaint); ok {
			d.complaints.SetEntries(entries)
			res.ComplaintsUpdated = true
		}
	case backend.KindStats:
		if stats, ok := evt.Data.(complaint.Stats); ok {
			d.complaints.SetStats(stats)
			res.StatsUpdated = true
		}
	}
	return res
}
