package app

import (
	"fmt"
	"time"

	"github.com/soocke/ringtrigger/ui/presenter"
)

// RequestReset drops the current episode on the next tick.
func (c *Container) RequestReset() { c.Loop.RequestReset() }

// SetPaused pauses or resumes detection and reports whether the state
// changed. Pausing also abandons any open episode.
func (c *Container) SetPaused(paused bool) bool {
	changed := c.Run.SetPaused(paused)
	if changed && c.Logger != nil {
		c.Logger.Info("run state changed", "paused", paused)
	}
	return changed
}

// TogglePause flips the paused state and returns the new value.
func (c *Container) TogglePause() bool {
	paused := c.Run.Toggle()
	if c.Logger != nil {
		c.Logger.Info("run state changed", "paused", paused)
	}
	return paused
}

// Running reports whether detection is active.
func (c *Container) Running() bool { return c.Run.Running() }

// Counters gathers loop, detection, dispatch and capture counters.
func (c *Container) Counters() presenter.Counters {
	ls := c.Loop.Stats()
	ds := c.Machine.Stats()
	as := c.Dispatcher.Stats()
	cs := c.Grabber.Stats()
	return presenter.Counters{
		Ticks:           ls.Ticks,
		Overruns:        ls.Overruns,
		Skipped:         ls.Skipped,
		Episodes:        ds.Episodes,
		Triggers:        ds.Triggers,
		Timeouts:        ds.Timeouts,
		SafetyResets:    ds.SafetyResets,
		Presses:         as.Presses,
		PressFailures:   as.PressFailures,
		Snapshots:       as.Snapshots,
		SnapshotErrors:  as.SnapshotErrors,
		CaptureFailures: cs.Failures,
		AvgCapture:      cs.AvgCapture,
	}
}

// Status returns a one-line summary for the console.
func (c *Container) Status() string {
	v := c.Detection.Snapshot()
	text := presenter.StatusText(v, time.Now())
	if !c.Running() {
		text = "Paused"
	}
	return fmt.Sprintf("%s | %s", text, presenter.FormatCounters(c.Counters()))
}

var (
	_ presenter.StatsSource = (*Container)(nil)
	_ presenter.RunControl  = (*Container)(nil)
	_ presenter.Resetter    = (*Container)(nil)
)
