package events

import "github.com/atomicstack/reclamation-control/internal/logging"

type TabTracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Tab     = TabTracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (TabTracer) Select(dashboard, tab string) {
	logging.Trace("tab.select", map[string]interface{}{"dashboard": dashboard, "tab": tab})
}

func (TabTracer) Cursor(listID string, cursor int) {
	logging.Trace("list.cursor", map[string]interface{}{"list": listID, "cursor": cursor})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(listID string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": listID})
}

func (FilterTracer) WordBackspace(listID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Cursor(listID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"list": listID, "cursor": pos})
}

func (FilterTracer) Append(listID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Backspace(listID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": listID, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
