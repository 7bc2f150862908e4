package events

import "github.com/atomicstack/reclamation-control/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Login(userID int64, role string) {
	logging.Trace("session.login", map[string]interface{}{"user": userID, "role": role})
}

func (SessionTracer) LoginFailed(role, username string, err error) {
	payload := map[string]interface{}{"role": role, "username": username}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.login.failed", payload)
}

func (SessionTracer) Logout(userID int64) {
	logging.Trace("session.logout", map[string]interface{}{"user": userID})
}
