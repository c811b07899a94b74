package app

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/ringtrigger/domain/detect"
	"github.com/soocke/ringtrigger/ui/model"
)

const (
	// pausedPoll is how long a paused loop waits between run flag checks.
	pausedPoll         = 50 * time.Millisecond
	captureErrLogEvery = 5 * time.Second
)

// FrameSource produces one sample per call and takes it back afterwards.
type FrameSource interface {
	Grab(now time.Time) (*image.RGBA, error)
	Release(frame *image.RGBA)
}

// Detector is the per-tick state machine.
type Detector interface {
	Step(frame *image.RGBA, now time.Time) detect.Result
	Reset()
}

// LoopStats is a point-in-time copy of the loop counters.
type LoopStats struct {
	Ticks    uint64
	Overruns uint64
	Skipped  uint64
}

// Loop is the per-tick body driven by the pacer: capture, step, release.
// Tick runs on the capture goroutine only. RequestReset and the counters
// are safe from any goroutine.
type Loop struct {
	frames   FrameSource
	detector Detector
	run      *model.RunModel
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	resetReq  atomic.Bool
	wasPaused bool
	lastErrAt time.Time

	ticks    atomic.Uint64
	overruns atomic.Uint64
	skipped  atomic.Uint64
}

// NewLoop wires a loop. run may be nil for an always-running loop.
func NewLoop(frames FrameSource, detector Detector, run *model.RunModel, interval time.Duration, logger *slog.Logger) *Loop {
	return &Loop{
		frames:   frames,
		detector: detector,
		run:      run,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestReset asks the loop to drop the current episode before its next
// evaluation.
func (l *Loop) RequestReset() { l.resetReq.Store(true) }

// Tick performs one iteration started at now and returns the extra pause
// requested by the detector.
func (l *Loop) Tick(now time.Time) time.Duration {
	l.ticks.Add(1)
	if l.resetReq.Swap(false) {
		l.detector.Reset()
		if l.logger != nil {
			l.logger.Info("detection reset requested")
		}
	}
	if !l.run.Running() {
		if !l.wasPaused {
			l.wasPaused = true
			l.detector.Reset()
			if l.logger != nil {
				l.logger.Info("detection paused")
			}
		}
		return pausedPoll
	}
	if l.wasPaused {
		l.wasPaused = false
		if l.logger != nil {
			l.logger.Info("detection resumed")
		}
	}

	frame, err := l.frames.Grab(now)
	if err != nil {
		l.skipped.Add(1)
		if l.logger != nil && now.Sub(l.lastErrAt) >= captureErrLogEvery {
			l.lastErrAt = now
			l.logger.Warn("capture failed; tick skipped", "error", err, "skipped_total", l.skipped.Load())
		}
		return 0
	}
	res := l.detector.Step(frame, now)
	l.frames.Release(frame)

	if elapsed := l.now().Sub(now); elapsed > l.interval {
		l.overruns.Add(1)
		if l.logger != nil {
			l.logger.Debug("tick overran interval", "elapsed", elapsed, "interval", l.interval)
		}
	}
	return res.Pause
}

// Stats returns the loop counters.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		Ticks:    l.ticks.Load(),
		Overruns: l.overruns.Load(),
		Skipped:  l.skipped.Load(),
	}
}

// Start runs the loop under the container's pacer until ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	if c.Logger != nil {
		c.Logger.Info("capture loop started")
		defer c.Logger.Info("capture loop stopped")
	}
	return c.Pacer.Run(ctx, c.Loop.Tick)
}
