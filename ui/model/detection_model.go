package model

import (
	"sync"
	"time"

	"github.com/soocke/ringtrigger/domain/detect"
)

// DetectionView is a copy of the detection status for display.
type DetectionView struct {
	Phase       detect.Phase
	Since       time.Time
	LastTrigger time.Time
	Episodes    int
	Triggers    int
}

// DetectionModel mirrors the machine's phase for readers outside the capture
// loop. OnTransition is registered as a detect.Listener.
type DetectionModel struct {
	mu  sync.Mutex
	v   DetectionView
	now func() time.Time
}

func NewDetectionModel() *DetectionModel {
	return &DetectionModel{now: time.Now}
}

// OnTransition records a phase change.
func (m *DetectionModel) OnTransition(prev, next detect.Phase) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now()
	m.v.Phase = next
	m.v.Since = t
	switch next {
	case detect.PhaseArmed:
		m.v.Episodes++
	case detect.PhaseTriggered:
		m.v.Triggers++
		m.v.LastTrigger = t
	}
}

// Snapshot returns the current status.
func (m *DetectionModel) Snapshot() DetectionView {
	if m == nil {
		return DetectionView{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v
}
