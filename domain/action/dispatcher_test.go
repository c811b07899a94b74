package action

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/soocke/ringtrigger/domain/detect"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingInjector struct {
	mu     sync.Mutex
	calls  []string
	failUp bool
}

func (r *recordingInjector) KeyDown(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "down:"+key)
	return nil
}

func (r *recordingInjector) KeyUp(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUp {
		return errors.New("boom")
	}
	r.calls = append(r.calls, "up:"+key)
	return nil
}

func (r *recordingInjector) Name() string { return "recording" }
func (r *recordingInjector) Close() error { return nil }

// queueSpawner holds tasks until run is called.
type queueSpawner struct {
	names []string
	tasks []func()
}

func (q *queueSpawner) Go(name string, task func()) {
	q.names = append(q.names, name)
	q.tasks = append(q.tasks, task)
}

func (q *queueSpawner) run() {
	for _, t := range q.tasks {
		t()
	}
	q.tasks = nil
}

type captureSaver struct {
	got []detect.TriggerEvent
	err error
}

func (c *captureSaver) Save(ev detect.TriggerEvent) error {
	c.got = append(c.got, ev)
	return c.err
}

func event() detect.TriggerEvent {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	frame.Pix[0] = 42
	return detect.TriggerEvent{
		Frame:      frame,
		Remembered: []image.Point{{1, 1}, {2, 1}},
		Confirmed:  []image.Point{{1, 1}},
	}
}

func TestDispatcher_DoesNotRunTasksInline(t *testing.T) {
	inj := &recordingInjector{}
	sp := &queueSpawner{}
	d := NewDispatcher(inj, "space", 30*time.Millisecond, 60*time.Millisecond, nil, sp, discardLogger())
	var slept []time.Duration
	d.sleep = func(h time.Duration) { slept = append(slept, h) }

	d.Dispatch(event())
	if len(inj.calls) != 0 {
		t.Fatalf("press must be scheduled, not run inline")
	}
	if len(sp.names) != 1 || sp.names[0] != "press" {
		t.Fatalf("expected one press task, got %v", sp.names)
	}
	sp.run()
	if len(inj.calls) != 2 || inj.calls[0] != "down:space" || inj.calls[1] != "up:space" {
		t.Fatalf("unexpected injector calls %v", inj.calls)
	}
	if len(slept) != 1 || slept[0] < 30*time.Millisecond || slept[0] > 60*time.Millisecond {
		t.Fatalf("hold outside range: %v", slept)
	}
	if st := d.Stats(); st.Presses != 1 || st.PressFailures != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDispatcher_SnapshotGetsPrivateCopies(t *testing.T) {
	saver := &captureSaver{}
	sp := &queueSpawner{}
	d := NewDispatcher(&recordingInjector{}, "space", 0, 0, saver, sp, discardLogger())
	d.sleep = func(time.Duration) {}

	ev := event()
	d.Dispatch(ev)
	// The loop reuses its buffers right after Dispatch returns.
	ev.Frame.Pix[0] = 0
	ev.Remembered[0] = image.Pt(9, 9)
	sp.run()

	if len(saver.got) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(saver.got))
	}
	got := saver.got[0]
	if got.Frame == ev.Frame || got.Frame.Pix[0] != 42 {
		t.Fatalf("snapshot frame must be a private copy")
	}
	if got.Remembered[0] != image.Pt(1, 1) {
		t.Fatalf("snapshot points must be a private copy")
	}
	if st := d.Stats(); st.Snapshots != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDispatcher_FailuresAreCountedNotPropagated(t *testing.T) {
	saver := &captureSaver{err: errors.New("disk full")}
	sp := &queueSpawner{}
	inj := &recordingInjector{failUp: true}
	d := NewDispatcher(inj, "space", 0, 0, saver, sp, discardLogger())
	d.sleep = func(time.Duration) {}
	d.Dispatch(event())
	sp.run()
	st := d.Stats()
	if st.PressFailures != 1 || st.SnapshotErrors != 1 || st.Presses != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDispatcher_OverlappingPresses(t *testing.T) {
	inj := &recordingInjector{}
	d := NewDispatcher(inj, "e", time.Millisecond, 2*time.Millisecond, nil, nil, discardLogger())
	for i := 0; i < 5; i++ {
		d.Dispatch(event())
	}
	deadline := time.Now().Add(2 * time.Second)
	for d.Stats().Presses < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("presses did not complete: %+v", d.Stats())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestGoSpawner_RecoversPanics(t *testing.T) {
	done := make(chan struct{})
	GoSpawner{Logger: discardLogger()}.Go("boom", func() {
		defer close(done)
		panic("boom")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("task did not run")
	}
}

func TestHoldDuration_StaysInRange(t *testing.T) {
	d := NewDispatcher(nil, "space", 30*time.Millisecond, 60*time.Millisecond, nil, &queueSpawner{}, nil)
	for i := 0; i < 200; i++ {
		h := d.holdDuration()
		if h < 30*time.Millisecond || h > 60*time.Millisecond {
			t.Fatalf("hold %v out of range", h)
		}
	}
	fixed := NewDispatcher(nil, "space", 40*time.Millisecond, 10*time.Millisecond, nil, &queueSpawner{}, nil)
	if h := fixed.holdDuration(); h != 40*time.Millisecond {
		t.Fatalf("inverted range must collapse to min, got %v", h)
	}
}
