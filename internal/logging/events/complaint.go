package events

import "github.com/atomicstack/reclamation-control/internal/logging"

type ComplaintTracer struct{}

var Complaint = ComplaintTracer{}

func (ComplaintTracer) StatusChange(id, from, to string) {
	logging.Trace("complaint.status", map[string]interface{}{"id": id, "from": from, "to": to})
}

func (ComplaintTracer) StatusFailed(id, to string, err error) {
	payload := map[string]interface{}{"id": id, "to": to}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("complaint.status.failed", payload)
}

func (ComplaintTracer) Refresh(count int) {
	logging.Trace("complaint.refresh", map[string]interface{}{"count": count})
}
