package pacer

import (
	"context"
	"testing"
	"time"
)

// fakeClock advances only when sleep is called or a busy-wait polls it.
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newFake(interval time.Duration, mode Mode) (*Pacer, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0), step: 50 * time.Microsecond}
	p := New(interval, mode)
	p.now = clk.now
	p.sleep = clk.sleep
	return p, clk
}

func runTicks(p *Pacer, n int, work func(i int) time.Duration) []time.Time {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var starts []time.Time
	_ = p.Run(ctx, func(now time.Time) time.Duration {
		starts = append(starts, now)
		pause := work(len(starts) - 1)
		if len(starts) == n {
			cancel()
		}
		return pause
	})
	return starts
}

func TestPacer_SpacesTickStarts(t *testing.T) {
	p, _ := newFake(10*time.Millisecond, Precise)
	starts := runTicks(p, 5, func(int) time.Duration { return 0 })
	if len(starts) != 5 {
		t.Fatalf("expected 5 ticks, got %d", len(starts))
	}
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(starts[i-1]); gap < 10*time.Millisecond {
			t.Fatalf("gap %v shorter than interval", gap)
		}
	}
}

func TestPacer_PauseDelaysNextTick(t *testing.T) {
	p := New(time.Millisecond, Relaxed)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var starts []time.Time
	_ = p.Run(ctx, func(now time.Time) time.Duration {
		starts = append(starts, now)
		if len(starts) == 2 {
			cancel()
		}
		return 20 * time.Millisecond
	})
	if len(starts) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(starts))
	}
	if gap := starts[1].Sub(starts[0]); gap < 20*time.Millisecond {
		t.Fatalf("pause not honored, gap %v", gap)
	}
}

func TestPacer_OverrunStartsNextTickImmediately(t *testing.T) {
	p, clk := newFake(10*time.Millisecond, Precise)
	starts := runTicks(p, 3, func(i int) time.Duration {
		if i == 0 {
			clk.t = clk.t.Add(25 * time.Millisecond)
		}
		return 0
	})
	gap := starts[1].Sub(starts[0])
	if gap < 25*time.Millisecond || gap > 26*time.Millisecond {
		t.Fatalf("expected next tick right after the overrun, gap %v", gap)
	}
	// No catch-up burst: the following gap is a full interval again.
	if g := starts[2].Sub(starts[1]); g < 10*time.Millisecond {
		t.Fatalf("missed ticks must not be replayed, gap %v", g)
	}
}

func TestPacer_WaitUntilRelaxedSleepsThenSpins(t *testing.T) {
	p, clk := newFake(10*time.Millisecond, Relaxed)
	deadline := clk.t.Add(10 * time.Millisecond)
	p.WaitUntil(context.Background(), deadline)
	if len(clk.slept) != 1 {
		t.Fatalf("expected one coarse sleep, got %v", clk.slept)
	}
	if clk.slept[0] > 9*time.Millisecond {
		t.Fatalf("coarse sleep %v must leave the slack for spinning", clk.slept[0])
	}
	if clk.t.Before(deadline) {
		t.Fatalf("returned before deadline")
	}
}

func TestPacer_WaitUntilPreciseNeverSleeps(t *testing.T) {
	p, clk := newFake(10*time.Millisecond, Precise)
	deadline := clk.t.Add(3 * time.Millisecond)
	p.WaitUntil(context.Background(), deadline)
	if len(clk.slept) != 0 {
		t.Fatalf("precise mode must not sleep, slept %v", clk.slept)
	}
	if clk.t.Before(deadline) {
		t.Fatalf("returned before deadline")
	}
}

func TestPacer_RunStopsOnCancel(t *testing.T) {
	p := New(time.Millisecond, Relaxed)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	if err := p.Run(ctx, func(time.Time) time.Duration { calls++; return 0 }); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("cancelled run must not tick")
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("relaxed") != Relaxed || ParseMode("precise") != Precise || ParseMode("x") != Precise {
		t.Fatalf("unexpected mode mapping")
	}
}
