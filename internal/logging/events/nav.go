package events

import "github.com/atomicstack/reclamation-control/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Present(view, title string, seq uint64) {
	logging.Trace("nav.present", map[string]interface{}{"view": view, "title": title, "seq": seq})
}

func (NavTracer) Failed(view string, err error) {
	if err == nil {
		return
	}
	logging.Trace("nav.failed", map[string]interface{}{"view": view, "error": err.Error()})
}

func (NavTracer) Alert(title string) {
	logging.Trace("nav.alert", map[string]interface{}{"title": title})
}
