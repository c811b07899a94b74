package capture

import (
	"image"
	"time"
)

// FrameSnapshot is a preview copy of a recent sample.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises grabber behaviour for instrumentation.
type CaptureStats struct {
	Backend          string
	Region           image.Rectangle
	Captures         uint64
	Failures         uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
	Sequence         uint64
}
