package action

import (
	"image"
	"log/slog"
	"math/rand"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/soocke/ringtrigger/domain/detect"
)

// Spawner schedules a detached task. Implementations must not wait for it.
type Spawner interface {
	Go(name string, task func())
}

// GoSpawner runs each task on its own goroutine and logs panics instead of
// crashing the process.
type GoSpawner struct {
	Logger *slog.Logger
}

func (s GoSpawner) Go(name string, task func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil && s.Logger != nil {
				s.Logger.Error("background task panic", "task", name, "error", r, "stack", string(debug.Stack()))
			}
		}()
		task()
	}()
}

// SnapshotSaver persists a diagnostic image for a trigger. The event's Frame
// is a private copy.
type SnapshotSaver interface {
	Save(ev detect.TriggerEvent) error
}

// DispatchStats is a point-in-time copy of dispatcher counters.
type DispatchStats struct {
	Presses        uint64
	PressFailures  uint64
	Snapshots      uint64
	SnapshotErrors uint64
}

// Dispatcher implements detect.TriggerSink. Dispatch copies what it needs
// and returns at once; the press and the snapshot run as separate tasks.
type Dispatcher struct {
	injector Injector
	key      string
	holdMin  time.Duration
	holdMax  time.Duration
	snapshot SnapshotSaver
	spawner  Spawner
	logger   *slog.Logger
	sleep    func(time.Duration)

	presses        atomic.Uint64
	pressFailures  atomic.Uint64
	snapshots      atomic.Uint64
	snapshotErrors atomic.Uint64
}

// NewDispatcher wires the collaborators. snapshot may be nil to disable
// diagnostics; spawner defaults to GoSpawner.
func NewDispatcher(inj Injector, key string, holdMin, holdMax time.Duration, snapshot SnapshotSaver, spawner Spawner, logger *slog.Logger) *Dispatcher {
	if holdMax < holdMin {
		holdMax = holdMin
	}
	if spawner == nil {
		spawner = GoSpawner{Logger: logger}
	}
	return &Dispatcher{
		injector: inj,
		key:      key,
		holdMin:  holdMin,
		holdMax:  holdMax,
		snapshot: snapshot,
		spawner:  spawner,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// Dispatch schedules the key press and, when enabled, the snapshot write.
func (d *Dispatcher) Dispatch(ev detect.TriggerEvent) {
	if d.injector != nil {
		hold := d.holdDuration()
		d.spawner.Go("press", func() { d.press(hold) })
	}
	if d.snapshot == nil {
		return
	}
	private := detect.TriggerEvent{
		Episode:     ev.Episode,
		At:          ev.At,
		Frame:       cloneRGBA(ev.Frame),
		Remembered:  append([]image.Point(nil), ev.Remembered...),
		Confirmed:   append([]image.Point(nil), ev.Confirmed...),
		SafetyRects: append([]image.Rectangle(nil), ev.SafetyRects...),
	}
	d.spawner.Go("snapshot", func() {
		if err := d.snapshot.Save(private); err != nil {
			d.snapshotErrors.Add(1)
			if d.logger != nil {
				d.logger.Warn("snapshot write failed", "episode", private.Episode.String(), "error", err)
			}
			return
		}
		d.snapshots.Add(1)
	})
}

// holdDuration draws uniformly from [holdMin, holdMax].
func (d *Dispatcher) holdDuration() time.Duration {
	span := d.holdMax - d.holdMin
	if span <= 0 {
		return d.holdMin
	}
	return d.holdMin + time.Duration(rand.Int63n(int64(span+1)))
}

func (d *Dispatcher) press(hold time.Duration) {
	if err := d.injector.KeyDown(d.key); err != nil {
		d.pressFailed("key down", err)
		return
	}
	d.sleep(hold)
	if err := d.injector.KeyUp(d.key); err != nil {
		d.pressFailed("key up", err)
		return
	}
	d.presses.Add(1)
	if d.logger != nil {
		d.logger.Debug("key pressed", "key", d.key, "hold_ms", hold.Milliseconds(), "injector", d.injector.Name())
	}
}

func (d *Dispatcher) pressFailed(stage string, err error) {
	d.pressFailures.Add(1)
	if d.logger != nil {
		d.logger.Warn("key injection failed", "stage", stage, "key", d.key, "error", err)
	}
}

// Stats returns the dispatcher counters.
func (d *Dispatcher) Stats() DispatchStats {
	return DispatchStats{
		Presses:        d.presses.Load(),
		PressFailures:  d.pressFailures.Load(),
		Snapshots:      d.snapshots.Load(),
		SnapshotErrors: d.snapshotErrors.Load(),
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	dst := &image.RGBA{
		Pix:    make([]byte, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}

var _ detect.TriggerSink = (*Dispatcher)(nil)
