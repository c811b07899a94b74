package model

import "sync/atomic"

// RunModel tracks whether detection is paused. The zero value is running.
// Hotkeys, console commands and the status window all toggle it, so it is
// safe for concurrent use.
type RunModel struct{ paused atomic.Bool }

// Running reports whether the capture loop should evaluate frames.
func (m *RunModel) Running() bool {
	if m == nil {
		return true
	}
	return !m.paused.Load()
}

// SetPaused stores the paused flag and reports whether it changed.
func (m *RunModel) SetPaused(p bool) bool {
	if m == nil {
		return false
	}
	return m.paused.Swap(p) != p
}

// Toggle flips the paused flag and returns the new value.
func (m *RunModel) Toggle() (paused bool) {
	if m == nil {
		return false
	}
	for {
		cur := m.paused.Load()
		if m.paused.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}
