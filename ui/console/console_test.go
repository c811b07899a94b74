package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/soocke/ringtrigger/config"
)

type fakeController struct {
	paused bool
	resets int
	quits  int
}

func (f *fakeController) TogglePause() bool { f.paused = !f.paused; return f.paused }
func (f *fakeController) RequestReset()     { f.resets++ }
func (f *fakeController) Status() string    { return "phase idle" }
func (f *fakeController) Quit()             { f.quits++ }

func TestReadCommands(t *testing.T) {
	c := &fakeController{}
	var out bytes.Buffer
	in := strings.NewReader("p\n R \nhelp\ns\nq\np\n")
	if err := ReadCommands(context.Background(), in, &out, c); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !c.paused || c.resets != 1 || c.quits != 1 {
		t.Fatalf("unexpected controller state %+v", c)
	}
	got := out.String()
	for _, want := range []string{"Paused.", "Reset.", "Commands:", "phase idle"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q: %q", want, got)
		}
	}
}

func TestReadCommands_EOF(t *testing.T) {
	c := &fakeController{}
	if err := ReadCommands(context.Background(), strings.NewReader("r"), &bytes.Buffer{}, c); err != nil {
		t.Fatalf("eof must end cleanly: %v", err)
	}
	if c.resets != 1 {
		t.Fatalf("last unterminated line must be handled")
	}
}

func TestCountdown_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	var out bytes.Buffer
	if err := Countdown(ctx, &out, 5); err == nil {
		t.Fatalf("expected cancellation error")
	}
	if !strings.Contains(out.String(), "Starting in 5") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if err := Countdown(context.Background(), &out, 0); err != nil {
		t.Fatalf("zero countdown must return immediately: %v", err)
	}
}

func TestBanner(t *testing.T) {
	var out bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.SaveSnapshots = true
	Banner(&out, cfg, "gdi", "log")
	s := out.String()
	for _, want := range []string{"186x186", "84.0-89.0", "output.bmp", "via log"} {
		if !strings.Contains(s, want) {
			t.Fatalf("banner missing %q:\n%s", want, s)
		}
	}
}
