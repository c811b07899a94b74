// Package console prints the startup banner and countdown and reads
// single-letter commands from stdin.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/soocke/ringtrigger/config"
)

// Banner writes a summary of the active configuration.
func Banner(w io.Writer, cfg *config.Config, backend, injector string) {
	fmt.Fprintf(w, "Start capture: %dx%d at (%d,%d) using %s, %d fps (%s)\n",
		cfg.CaptureSize, cfg.CaptureSize, cfg.CaptureX, cfg.CaptureY, backend, cfg.FPS, cfg.Pacing)
	fmt.Fprintf(w, "Ring: radius %.1f-%.1f, offset (%d,%d), grouping %s\n",
		cfg.RingInnerRadius, cfg.RingOuterRadius, cfg.RingOffsetX, cfg.RingOffsetY, cfg.Grouping)
	fmt.Fprintf(w, "Arm: >= %d pixels with all channels >= %d\n", cfg.MinWhitePixels, cfg.WhiteThreshold)
	fmt.Fprintf(w, "Confirm: >= %d pixels with R >= %d, G/B < %d, dominance %d\n",
		cfg.MinRedPixels, cfg.RedThreshold, cfg.OtherChannelMax, cfg.RedDominance)
	fmt.Fprintf(w, "Timer: %dms, reset delay: %dms, key %q held %d-%dms via %s\n",
		cfg.ArmTimeoutMS, cfg.ResetDelayMS, cfg.Key, cfg.HoldMinMS, cfg.HoldMaxMS, injector)
	if n := len(cfg.SafetyRects()); n > 0 {
		fmt.Fprintf(w, "Safety regions: %d\n", n)
	}
	if cfg.SaveSnapshots {
		fmt.Fprintf(w, "Snapshots: %s\n", cfg.SnapshotPath)
	}
	fmt.Fprintln(w, "Commands: p = pause/resume, r = reset, s = status, q = quit")
}

// Countdown prints one line per remaining second. It returns ctx.Err() if
// cancelled before reaching zero.
func Countdown(ctx context.Context, w io.Writer, seconds int) error {
	for s := seconds; s > 0; s-- {
		fmt.Fprintf(w, "Starting in %d...\n", s)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if seconds > 0 {
		fmt.Fprintln(w, "Running.")
	}
	return nil
}

// Controller receives console commands.
type Controller interface {
	TogglePause() (paused bool)
	RequestReset()
	Status() string
	Quit()
}

// ReadCommands handles one command per input line until r is exhausted or
// ctx is done. Unknown input prints the command list.
func ReadCommands(ctx context.Context, r io.Reader, w io.Writer, c Controller) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			return err
		case line := <-lines:
			if quit := handle(strings.TrimSpace(strings.ToLower(line)), w, c); quit {
				return nil
			}
		}
	}
}

func handle(cmd string, w io.Writer, c Controller) (quit bool) {
	switch cmd {
	case "":
		return false
	case "p", "pause", "resume":
		if c.TogglePause() {
			fmt.Fprintln(w, "Paused.")
		} else {
			fmt.Fprintln(w, "Resumed.")
		}
	case "r", "reset":
		c.RequestReset()
		fmt.Fprintln(w, "Reset.")
	case "s", "status":
		fmt.Fprintln(w, c.Status())
	case "q", "quit", "exit":
		c.Quit()
		return true
	default:
		fmt.Fprintln(w, "Commands: p = pause/resume, r = reset, s = status, q = quit")
	}
	return false
}
