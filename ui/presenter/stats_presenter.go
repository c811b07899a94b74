package presenter

import (
	"fmt"
	"time"
)

// Counters aggregates the loop, detection, dispatch and capture counters.
type Counters struct {
	Ticks           uint64
	Overruns        uint64
	Skipped         uint64
	Episodes        uint64
	Triggers        uint64
	Timeouts        uint64
	SafetyResets    uint64
	Presses         uint64
	PressFailures   uint64
	Snapshots       uint64
	SnapshotErrors  uint64
	CaptureFailures uint64
	AvgCapture      time.Duration
}

// StatsSource provides the current counters.
type StatsSource interface{ Counters() Counters }

// StatsView displays preformatted counter lines.
type StatsView interface{ SetStats(text string) }

// StatsPresenter refreshes the counters label at most every interval.
type StatsPresenter struct {
	src      StatsSource
	view     StatsView
	interval time.Duration
	last     time.Time
	text     string
}

func NewStatsPresenter(src StatsSource, view StatsView) *StatsPresenter {
	return &StatsPresenter{src: src, view: view, interval: 500 * time.Millisecond}
}

func (p *StatsPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	if !p.last.IsZero() && now.Sub(p.last) < p.interval {
		return
	}
	p.last = now
	text := FormatCounters(p.src.Counters())
	if text != p.text {
		p.text = text
		p.view.SetStats(text)
	}
}

// FormatCounters renders counters as two short lines.
func FormatCounters(c Counters) string {
	return fmt.Sprintf("episodes %d  triggers %d  timeouts %d  safety %d\npresses %d/%d  snapshots %d/%d  ticks %d  overruns %d  skipped %d  capture %s",
		c.Episodes, c.Triggers, c.Timeouts, c.SafetyResets,
		c.Presses, c.Presses+c.PressFailures,
		c.Snapshots, c.Snapshots+c.SnapshotErrors,
		c.Ticks, c.Overruns, c.Skipped+c.CaptureFailures,
		c.AvgCapture.Round(time.Microsecond))
}
