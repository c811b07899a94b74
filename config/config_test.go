package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func readRaw(t *testing.T, path string) map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("regenerated file is not JSON: %v", err)
	}
	return m
}

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	raw := readRaw(t, path)
	if raw["capture_size"] != float64(186) {
		t.Fatalf("expected capture_size 186 in regenerated file, got %v", raw["capture_size"])
	}
}

func TestLoad_MalformedValueFallsBackAndRegenerates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw := readRaw(t, path)
	raw["fps"] = "fast"
	raw["min_white_pixels"] = 30
	b, _ := json.Marshal(raw)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FPS != 90 {
		t.Fatalf("expected fps fallback 90, got %d", cfg.FPS)
	}
	if cfg.MinWhitePixels != 30 {
		t.Fatalf("valid key must be kept, got %d", cfg.MinWhitePixels)
	}
	if got := readRaw(t, path)["fps"]; got != float64(90) {
		t.Fatalf("expected regenerated fps 90, got %v", got)
	}
}

func TestLoad_GarbageFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RingOuterRadius != 89 {
		t.Fatalf("expected default outer radius, got %v", cfg.RingOuterRadius)
	}
	readRaw(t, path)
}

func TestValidate_ClampsRadiiAndHold(t *testing.T) {
	c := DefaultConfig()
	c.RingInnerRadius = 90
	c.RingOuterRadius = 80
	c.HoldMinMS = 50
	c.HoldMaxMS = 10
	if err := c.Validate(); err == nil {
		t.Fatalf("expected repair report")
	}
	if c.RingOuterRadius <= c.RingInnerRadius {
		t.Fatalf("outer radius must exceed inner, got %v/%v", c.RingInnerRadius, c.RingOuterRadius)
	}
	if c.HoldMaxMS < c.HoldMinMS {
		t.Fatalf("hold max must be >= min")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate cleanly: %v", err)
	}
}

func TestApplyFlags_OverridesWithoutPersisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--fps=120", "--save-snapshots", "--ring-inner-radius=85.5"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 120 || !cfg.SaveSnapshots || cfg.RingInnerRadius != 85.5 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.CaptureSize != 186 {
		t.Fatalf("unset flag must not override, got %d", cfg.CaptureSize)
	}
	if got := readRaw(t, path)["fps"]; got != float64(90) {
		t.Fatalf("flag value leaked into file: %v", got)
	}
}

func TestSafetyRects(t *testing.T) {
	c := DefaultConfig()
	if len(c.SafetyRects()) != 0 {
		t.Fatalf("safety rects disabled by default")
	}
	c.Safety2Enabled = true
	c.Safety2X, c.Safety2Y, c.Safety2W, c.Safety2H = 10, 20, 5, 6
	rs := c.SafetyRects()
	if len(rs) != 1 || rs[0].Min.X != 10 || rs[0].Max.Y != 26 {
		t.Fatalf("unexpected rects %v", rs)
	}
}
