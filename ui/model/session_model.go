package model

import (
	"time"
)

// SessionModel tracks how long detection has been running (unpaused) in the
// current stretch and in total. Only the UI tick touches it.
// The zero value is ready to use.
type SessionModel struct {
	running  bool
	started  time.Time
	current  time.Duration
	finished time.Duration
}

func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the model with the current running flag.
func (m *SessionModel) OnTick(running bool, now time.Time) {
	if m == nil {
		return
	}
	switch {
	case running && !m.running:
		m.running = true
		m.started = now
		m.current = 0
	case running:
		m.current = now.Sub(m.started)
	case m.running:
		m.current = now.Sub(m.started)
		m.finished += m.current
		m.running = false
	}
}

// Values returns the current stretch and the total running time including it.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	if m.running {
		return m.current, m.finished + m.current
	}
	return m.current, m.finished
}
