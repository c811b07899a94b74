// Package pacer runs a tick function at a fixed frame interval.
package pacer

import (
	"context"
	"time"
)

// Mode selects how the remainder of an interval is waited out.
type Mode int

const (
	// Precise busy-waits the entire remainder.
	Precise Mode = iota
	// Relaxed sleeps until shortly before the deadline and spins the rest.
	Relaxed
)

// ParseMode maps a config value to a Mode. Unknown values are Precise.
func ParseMode(s string) Mode {
	if s == "relaxed" {
		return Relaxed
	}
	return Precise
}

func (m Mode) String() string {
	if m == Relaxed {
		return "relaxed"
	}
	return "precise"
}

// TickFunc performs one iteration started at now and returns an extra pause
// to observe before the next interval is measured.
type TickFunc func(now time.Time) time.Duration

// Pacer spaces tick starts by at least Interval. An overrunning tick is
// followed immediately by the next one; missed ticks are not replayed.
type Pacer struct {
	interval time.Duration
	mode     Mode
	slack    time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// New returns a pacer for the given interval.
func New(interval time.Duration, mode Mode) *Pacer {
	if interval <= 0 {
		interval = time.Second / 90
	}
	return &Pacer{
		interval: interval,
		mode:     mode,
		slack:    time.Millisecond,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Interval returns the configured tick spacing.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Mode returns the wait strategy.
func (p *Pacer) Mode() Mode { return p.mode }

// Run calls tick until ctx is cancelled. It returns ctx.Err().
func (p *Pacer) Run(ctx context.Context, tick TickFunc) error {
	restore := raiseTimerResolution()
	defer restore()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := p.now()
		pause := tick(start)
		if pause > 0 {
			if !p.sleepCtx(ctx, pause) {
				return ctx.Err()
			}
		}
		p.WaitUntil(ctx, start.Add(p.interval))
	}
}

// WaitUntil blocks until deadline using the pacer's mode. It returns early
// when ctx is cancelled.
func (p *Pacer) WaitUntil(ctx context.Context, deadline time.Time) {
	if p.mode == Relaxed {
		if d := deadline.Sub(p.now()) - p.slack; d > 0 {
			if !p.sleepCtx(ctx, d) {
				return
			}
		}
	}
	for p.now().Before(deadline) {
		if ctx.Err() != nil {
			return
		}
	}
}

func (p *Pacer) sleepCtx(ctx context.Context, d time.Duration) bool {
	if ctx.Done() == nil {
		p.sleep(d)
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
