package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

type fakeBackend struct {
	calls int
	fail  bool
	fill  uint8
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Grab(r image.Rectangle) (*image.RGBA, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("blt failed")
	}
	// Screen-space origin, like the real backends.
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: f.fill, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	return img, nil
}

func TestGrabber_NormalizesOrigin(t *testing.T) {
	region := image.Rect(100, 50, 110, 60)
	g := NewGrabber(&fakeBackend{fill: 9}, region, nil)
	frame, err := g.Grab(time.Now())
	if err != nil {
		t.Fatalf("grab: %v", err)
	}
	defer g.Release(frame)
	if frame.Rect != image.Rect(0, 0, 10, 10) {
		t.Fatalf("expected sample-relative bounds, got %v", frame.Rect)
	}
	if c := frame.RGBAAt(3, 4); c.R != 9 || c.G != 103 || c.B != 54 {
		t.Fatalf("pixel not copied from screen (103,54): %v", c)
	}
	if st := g.Stats(); st.Captures != 1 || st.Failures != 0 || st.Backend != "fake" {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestGrabber_FailureWrapsUnavailable(t *testing.T) {
	g := NewGrabber(&fakeBackend{fail: true}, image.Rect(0, 0, 4, 4), nil)
	if _, err := g.Grab(time.Now()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := g.Probe(); err == nil {
		t.Fatalf("probe must report failure")
	}
	if st := g.Stats(); st.Failures != 2 {
		t.Fatalf("expected 2 failures, got %d", st.Failures)
	}
}

func TestGrabber_PreviewIsACopy(t *testing.T) {
	g := NewGrabber(&fakeBackend{fill: 1}, image.Rect(0, 0, 4, 4), nil)
	g.SetPreview(true)
	frame, err := g.Grab(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	snap := g.LatestFrame()
	if snap.Image == nil || snap.Sequence != 1 {
		t.Fatalf("expected preview snapshot, got %+v", snap)
	}
	frame.Pix[0] = 200
	g.Release(frame)
	if snap.Image.Pix[0] != 1 {
		t.Fatalf("preview must not alias the pooled frame")
	}
}

func TestAcquireFrame_ReusesPool(t *testing.T) {
	f := acquireFrame(8, 8)
	if len(f.Pix) != 256 || f.Stride != 32 {
		t.Fatalf("unexpected frame layout len=%d stride=%d", len(f.Pix), f.Stride)
	}
	RecycleFrame(f)
	g := acquireFrame(4, 4)
	if len(g.Pix) != 64 || g.Rect != image.Rect(0, 0, 4, 4) {
		t.Fatalf("unexpected resized frame %v len=%d", g.Rect, len(g.Pix))
	}
}

func TestResolveRegion(t *testing.T) {
	prev := primaryBounds
	t.Cleanup(func() { primaryBounds = prev })
	primaryBounds = func() (image.Rectangle, error) { return image.Rect(0, 0, 1920, 1080), nil }

	r, err := ResolveRegion(186, 1187, 607)
	if err != nil || r != image.Rect(1187, 607, 1373, 793) {
		t.Fatalf("explicit region: %v %v", r, err)
	}
	r, err = ResolveRegion(200, -1, -1)
	if err != nil || r != image.Rect(860, 440, 1060, 640) {
		t.Fatalf("centered region: %v %v", r, err)
	}
	primaryBounds = func() (image.Rectangle, error) { return image.Rectangle{}, ErrNoDisplay }
	if _, err := ResolveRegion(200, -1, 5); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("expected ErrNoDisplay, got %v", err)
	}
	if _, err := ResolveRegion(0, 1, 1); err == nil {
		t.Fatalf("zero size must fail")
	}
}

func TestNewBackend(t *testing.T) {
	for _, name := range []string{BackendScreenshot, BackendKbinani, BackendAuto} {
		b, err := NewBackend(name)
		if err != nil || b == nil {
			t.Fatalf("backend %q: %v", name, err)
		}
	}
	if _, err := NewBackend("vnc"); err == nil {
		t.Fatalf("unknown backend must fail")
	}
}
