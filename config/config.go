package config

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// Config holds runtime configuration for capture, detection and actions.
// Fields are loaded from a JSON file (see Load) and may be overridden by
// command-line flags for a single run.
type Config struct {
	Debug    bool   `json:"debug" mapstructure:"debug"`
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// Capture geometry. A negative position centers the square on the primary display.
	CaptureSize    int    `json:"capture_size" mapstructure:"capture_size"`
	CaptureX       int    `json:"capture_x" mapstructure:"capture_x"`
	CaptureY       int    `json:"capture_y" mapstructure:"capture_y"`
	CaptureBackend string `json:"capture_backend" mapstructure:"capture_backend"`
	FPS            int    `json:"fps" mapstructure:"fps"`
	Pacing         string `json:"pacing" mapstructure:"pacing"`

	// Ring geometry, relative to the sample center.
	RingInnerRadius float64 `json:"ring_inner_radius" mapstructure:"ring_inner_radius"`
	RingOuterRadius float64 `json:"ring_outer_radius" mapstructure:"ring_outer_radius"`
	RingOffsetX     int     `json:"ring_offset_x" mapstructure:"ring_offset_x"`
	RingOffsetY     int     `json:"ring_offset_y" mapstructure:"ring_offset_y"`

	// Detection thresholds and timers
	Grouping        string `json:"grouping" mapstructure:"grouping"`
	MinWhitePixels  int    `json:"min_white_pixels" mapstructure:"min_white_pixels"`
	MinRedPixels    int    `json:"min_red_pixels" mapstructure:"min_red_pixels"`
	ArmTimeoutMS    int    `json:"arm_timeout_ms" mapstructure:"arm_timeout_ms"`
	ResetDelayMS    int    `json:"reset_delay_ms" mapstructure:"reset_delay_ms"`
	WhiteThreshold  int    `json:"white_threshold" mapstructure:"white_threshold"`
	RedThreshold    int    `json:"red_threshold" mapstructure:"red_threshold"`
	OtherChannelMax int    `json:"other_channel_max" mapstructure:"other_channel_max"`
	RedDominance    int    `json:"red_dominance" mapstructure:"red_dominance"`

	// Safety rectangles (sample coordinates) that must stay black while armed.
	Safety1Enabled bool `json:"safety1_enabled" mapstructure:"safety1_enabled"`
	Safety1X       int  `json:"safety1_x" mapstructure:"safety1_x"`
	Safety1Y       int  `json:"safety1_y" mapstructure:"safety1_y"`
	Safety1W       int  `json:"safety1_w" mapstructure:"safety1_w"`
	Safety1H       int  `json:"safety1_h" mapstructure:"safety1_h"`
	Safety2Enabled bool `json:"safety2_enabled" mapstructure:"safety2_enabled"`
	Safety2X       int  `json:"safety2_x" mapstructure:"safety2_x"`
	Safety2Y       int  `json:"safety2_y" mapstructure:"safety2_y"`
	Safety2W       int  `json:"safety2_w" mapstructure:"safety2_w"`
	Safety2H       int  `json:"safety2_h" mapstructure:"safety2_h"`

	// Key injection
	Key        string `json:"key" mapstructure:"key"`
	HoldMinMS  int    `json:"hold_min_ms" mapstructure:"hold_min_ms"`
	HoldMaxMS  int    `json:"hold_max_ms" mapstructure:"hold_max_ms"`
	Injector   string `json:"injector" mapstructure:"injector"`
	SerialPort string `json:"serial_port" mapstructure:"serial_port"`
	SerialBaud int    `json:"serial_baud" mapstructure:"serial_baud"`

	// Diagnostics
	SaveSnapshots bool   `json:"save_snapshots" mapstructure:"save_snapshots"`
	SnapshotPath  string `json:"snapshot_path" mapstructure:"snapshot_path"`

	// Interaction
	StartDelaySeconds int  `json:"start_delay_seconds" mapstructure:"start_delay_seconds"`
	GUI               bool `json:"gui" mapstructure:"gui"`
	Hotkeys           bool `json:"hotkeys" mapstructure:"hotkeys"`
}

// Grouping modes.
const (
	GroupingConnected = "connected"
	GroupingCount     = "count"
)

// Pacing modes.
const (
	PacingPrecise = "precise"
	PacingRelaxed = "relaxed"
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		LogLevel:          "info",
		CaptureSize:       186,
		CaptureX:          1187,
		CaptureY:          607,
		CaptureBackend:    "auto",
		FPS:               90,
		Pacing:            PacingPrecise,
		RingInnerRadius:   84,
		RingOuterRadius:   89,
		RingOffsetX:       0,
		RingOffsetY:       0,
		Grouping:          GroupingConnected,
		MinWhitePixels:    16,
		MinRedPixels:      2,
		ArmTimeoutMS:      1200,
		ResetDelayMS:      500,
		WhiteThreshold:    0xFE,
		RedThreshold:      50,
		OtherChannelMax:   150,
		RedDominance:      0,
		Key:               "space",
		HoldMinMS:         30,
		HoldMaxMS:         60,
		Injector:          "auto",
		SerialPort:        "COM3",
		SerialBaud:        9600,
		SaveSnapshots:     false,
		SnapshotPath:      "output.bmp",
		StartDelaySeconds: 3,
		GUI:               false,
		Hotkeys:           true,
	}
}

// Validate clamps/normalizes values to safe ranges. The returned error lists
// every key that had to be repaired; the Config is usable either way.
func (c *Config) Validate() error {
	d := DefaultConfig()
	var errs []error
	fix := func(key string, cond bool, apply func()) {
		if cond {
			apply()
			errs = append(errs, fmt.Errorf("%s out of range, reset", key))
		}
	}
	fix("capture_size", c.CaptureSize <= 0 || c.CaptureSize > 4096, func() { c.CaptureSize = d.CaptureSize })
	fix("fps", c.FPS <= 0 || c.FPS > 1000, func() { c.FPS = d.FPS })
	fix("pacing", c.Pacing != PacingPrecise && c.Pacing != PacingRelaxed, func() { c.Pacing = d.Pacing })
	fix("capture_backend", !validBackend(c.CaptureBackend), func() { c.CaptureBackend = d.CaptureBackend })
	fix("ring_inner_radius", c.RingInnerRadius < 0, func() { c.RingInnerRadius = 0 })
	fix("ring_outer_radius", c.RingOuterRadius <= c.RingInnerRadius, func() { c.RingOuterRadius = c.RingInnerRadius + 1 })
	fix("grouping", c.Grouping != GroupingConnected && c.Grouping != GroupingCount, func() { c.Grouping = d.Grouping })
	fix("min_white_pixels", c.MinWhitePixels < 1, func() { c.MinWhitePixels = 1 })
	fix("min_red_pixels", c.MinRedPixels < 1, func() { c.MinRedPixels = 1 })
	fix("arm_timeout_ms", c.ArmTimeoutMS <= 0, func() { c.ArmTimeoutMS = d.ArmTimeoutMS })
	fix("reset_delay_ms", c.ResetDelayMS < 0, func() { c.ResetDelayMS = d.ResetDelayMS })
	fix("white_threshold", c.WhiteThreshold < 0 || c.WhiteThreshold > 255, func() { c.WhiteThreshold = d.WhiteThreshold })
	fix("red_threshold", c.RedThreshold < 0 || c.RedThreshold > 255, func() { c.RedThreshold = d.RedThreshold })
	fix("other_channel_max", c.OtherChannelMax < 0 || c.OtherChannelMax > 256, func() { c.OtherChannelMax = d.OtherChannelMax })
	fix("red_dominance", c.RedDominance < 0 || c.RedDominance > 255, func() { c.RedDominance = 0 })
	fix("hold_min_ms", c.HoldMinMS < 0, func() { c.HoldMinMS = d.HoldMinMS })
	fix("hold_max_ms", c.HoldMaxMS < c.HoldMinMS, func() { c.HoldMaxMS = c.HoldMinMS })
	fix("injector", !validInjector(c.Injector), func() { c.Injector = d.Injector })
	fix("serial_baud", c.SerialBaud <= 0, func() { c.SerialBaud = d.SerialBaud })
	fix("snapshot_path", c.SnapshotPath == "", func() { c.SnapshotPath = d.SnapshotPath })
	fix("start_delay_seconds", c.StartDelaySeconds < 0, func() { c.StartDelaySeconds = 0 })
	fix("key", c.Key == "", func() { c.Key = d.Key })
	return errors.Join(errs...)
}

func validBackend(s string) bool {
	switch s {
	case "auto", "gdi", "screenshot", "kbinani":
		return true
	}
	return false
}

func validInjector(s string) bool {
	switch s {
	case "auto", "sendinput", "serial", "log":
		return true
	}
	return false
}

// FrameInterval is the target spacing between tick starts.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 90
	}
	return time.Second / time.Duration(c.FPS)
}

// ArmTimeout is the deadline added to the arming tick.
func (c *Config) ArmTimeout() time.Duration {
	return time.Duration(c.ArmTimeoutMS) * time.Millisecond
}

// ResetDelay is both the cooldown after a trigger and the pause after a timeout.
func (c *Config) ResetDelay() time.Duration {
	return time.Duration(c.ResetDelayMS) * time.Millisecond
}

// HoldRange returns the key hold bounds.
func (c *Config) HoldRange() (time.Duration, time.Duration) {
	return time.Duration(c.HoldMinMS) * time.Millisecond, time.Duration(c.HoldMaxMS) * time.Millisecond
}

// SafetyRects returns the enabled safety rectangles in sample coordinates.
func (c *Config) SafetyRects() []image.Rectangle {
	var out []image.Rectangle
	if c.Safety1Enabled && c.Safety1W > 0 && c.Safety1H > 0 {
		out = append(out, image.Rect(c.Safety1X, c.Safety1Y, c.Safety1X+c.Safety1W, c.Safety1Y+c.Safety1H))
	}
	if c.Safety2Enabled && c.Safety2W > 0 && c.Safety2H > 0 {
		out = append(out, image.Rect(c.Safety2X, c.Safety2Y, c.Safety2X+c.Safety2W, c.Safety2Y+c.Safety2H))
	}
	return out
}
