package events

import "github.com/atomicstack/reclamation-control/internal/logging"

type FormTracer struct{}

var Form = FormTracer{}

func (FormTracer) Open(userID int64) {
	logging.Trace("form.open", map[string]interface{}{"user": userID})
}

func (FormTracer) Submitted(id, category string) {
	logging.Trace("form.submitted", map[string]interface{}{"id": id, "category": category})
}

func (FormTracer) Invalid(err error) {
	if err == nil {
		return
	}
	logging.Trace("form.invalid", map[string]interface{}{"error": err.Error()})
}

func (FormTracer) Failed(err error) {
	if err == nil {
		return
	}
	logging.Trace("form.failed", map[string]interface{}{"error": err.Error()})
}

func (FormTracer) Cancel() {
	logging.Trace("form.cancel", nil)
}
