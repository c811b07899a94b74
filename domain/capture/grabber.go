package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	captureStatsLogInterval = 5 * time.Second
	previewInterval         = 200 * time.Millisecond
)

// Grabber copies the configured screen square into pooled sample buffers.
// Grab and Release are called from the capture loop only; Stats and
// LatestFrame are safe from any goroutine.
type Grabber struct {
	backend Backend
	region  image.Rectangle
	logger  *slog.Logger

	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastCapture  atomic.Int64

	preview     atomic.Bool
	latest      atomic.Pointer[FrameSnapshot]
	lastPreview time.Time
	lastStatLog time.Time
}

// NewGrabber returns a grabber for region using backend.
func NewGrabber(backend Backend, region image.Rectangle, logger *slog.Logger) *Grabber {
	return &Grabber{backend: backend, region: region, logger: logger}
}

// Region returns the screen rectangle being sampled.
func (g *Grabber) Region() image.Rectangle { return g.region }

// SetPreview enables periodic preview copies for LatestFrame.
func (g *Grabber) SetPreview(on bool) { g.preview.Store(on) }

// Probe performs one capture to verify the backend works at startup.
func (g *Grabber) Probe() error {
	frame, err := g.Grab(time.Now())
	if err != nil {
		return err
	}
	g.Release(frame)
	return nil
}

// Grab captures one sample. The returned frame has origin (0,0) and must be
// handed back with Release once the tick is done with it. Errors wrap
// ErrUnavailable.
func (g *Grabber) Grab(now time.Time) (*image.RGBA, error) {
	start := time.Now()
	img, err := g.backend.Grab(g.region)
	if err == nil && (img == nil || img.Rect.Dx() != g.region.Dx() || img.Rect.Dy() != g.region.Dy()) {
		err = fmt.Errorf("%w: %s returned unexpected bounds", ErrUnavailable, g.backend.Name())
	}
	if err != nil {
		g.failures.Add(1)
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	frame := acquireFrame(g.region.Dx(), g.region.Dy())
	copyInto(frame, img)

	g.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	g.captures.Add(1)
	seq := g.sequence.Add(1)
	g.lastCapture.Store(now.UnixNano())

	if g.preview.Load() && now.Sub(g.lastPreview) >= previewInterval {
		g.lastPreview = now
		g.latest.Store(&FrameSnapshot{Image: cloneFrame(frame), CapturedAt: now, Sequence: seq})
	}
	if now.Sub(g.lastStatLog) >= captureStatsLogInterval {
		if !g.lastStatLog.IsZero() {
			g.logStats()
		}
		g.lastStatLog = now
	}
	return frame, nil
}

// Release recycles a frame returned by Grab.
func (g *Grabber) Release(frame *image.RGBA) { RecycleFrame(frame) }

// LatestFrame returns the newest preview copy, if preview is enabled.
func (g *Grabber) LatestFrame() FrameSnapshot {
	snap := g.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (g *Grabber) Stats() CaptureStats {
	captures := g.captures.Load()
	total := g.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	if ns := g.lastCapture.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return CaptureStats{
		Backend:          g.backend.Name(),
		Region:           g.region,
		Captures:         captures,
		Failures:         g.failures.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      last,
		Sequence:         g.sequence.Load(),
	}
}

func (g *Grabber) logStats() {
	if g.logger == nil {
		return
	}
	stats := g.Stats()
	g.logger.Debug("capture.stats",
		"backend", stats.Backend,
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
	)
}
