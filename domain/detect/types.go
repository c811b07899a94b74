package detect

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Phase enumerates the detection cycle.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseTriggered
	PhaseCooldown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseTriggered:
		return "triggered"
	case PhaseCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Listener is called on each phase transition, on the goroutine driving Step.
type Listener func(prev, next Phase)

// TriggerEvent is emitted exactly once per armed episode that confirms.
// Frame is the live capture buffer and is only valid for the duration of
// Dispatch; sinks that keep it must copy it first. Remembered and Confirmed
// are private copies owned by the receiver.
type TriggerEvent struct {
	Episode     uuid.UUID
	At          time.Time
	Frame       *image.RGBA
	Remembered  []image.Point
	Confirmed   []image.Point
	SafetyRects []image.Rectangle
}

// TriggerSink receives trigger events. Dispatch must not block the caller.
type TriggerSink interface {
	Dispatch(ev TriggerEvent)
}

// Result reports the outcome of one Step.
type Result struct {
	Phase     Phase
	Triggered bool
	// Pause is an extra delay the driver should wait before the next tick
	// (reset delay after a timeout or a trigger).
	Pause time.Duration
}

// Stats is a point-in-time copy of the detection counters.
type Stats struct {
	Episodes     uint64
	Triggers     uint64
	Timeouts     uint64
	SafetyResets uint64
}

type counters struct {
	episodes     atomic.Uint64
	triggers     atomic.Uint64
	timeouts     atomic.Uint64
	safetyResets atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Episodes:     c.episodes.Load(),
		Triggers:     c.triggers.Load(),
		Timeouts:     c.timeouts.Load(),
		SafetyResets: c.safetyResets.Load(),
	}
}

type atomicPhase struct{ v atomic.Int32 }

func (a *atomicPhase) Load() Phase   { return Phase(a.v.Load()) }
func (a *atomicPhase) Store(p Phase) { a.v.Store(int32(p)) }
