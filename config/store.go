package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "ringtrigger.json"

// EnvPrefix prefixes environment overrides, e.g. RINGTRIGGER_FPS=120.
const EnvPrefix = "RINGTRIGGER"

type field struct {
	key string
	ptr any
}

// fields enumerates every persisted key. Order is the order of the struct.
func (c *Config) fields() []field {
	return []field{
		{"debug", &c.Debug},
		{"log_level", &c.LogLevel},
		{"capture_size", &c.CaptureSize},
		{"capture_x", &c.CaptureX},
		{"capture_y", &c.CaptureY},
		{"capture_backend", &c.CaptureBackend},
		{"fps", &c.FPS},
		{"pacing", &c.Pacing},
		{"ring_inner_radius", &c.RingInnerRadius},
		{"ring_outer_radius", &c.RingOuterRadius},
		{"ring_offset_x", &c.RingOffsetX},
		{"ring_offset_y", &c.RingOffsetY},
		{"grouping", &c.Grouping},
		{"min_white_pixels", &c.MinWhitePixels},
		{"min_red_pixels", &c.MinRedPixels},
		{"arm_timeout_ms", &c.ArmTimeoutMS},
		{"reset_delay_ms", &c.ResetDelayMS},
		{"white_threshold", &c.WhiteThreshold},
		{"red_threshold", &c.RedThreshold},
		{"other_channel_max", &c.OtherChannelMax},
		{"red_dominance", &c.RedDominance},
		{"safety1_enabled", &c.Safety1Enabled},
		{"safety1_x", &c.Safety1X},
		{"safety1_y", &c.Safety1Y},
		{"safety1_w", &c.Safety1W},
		{"safety1_h", &c.Safety1H},
		{"safety2_enabled", &c.Safety2Enabled},
		{"safety2_x", &c.Safety2X},
		{"safety2_y", &c.Safety2Y},
		{"safety2_w", &c.Safety2W},
		{"safety2_h", &c.Safety2H},
		{"key", &c.Key},
		{"hold_min_ms", &c.HoldMinMS},
		{"hold_max_ms", &c.HoldMaxMS},
		{"injector", &c.Injector},
		{"serial_port", &c.SerialPort},
		{"serial_baud", &c.SerialBaud},
		{"save_snapshots", &c.SaveSnapshots},
		{"snapshot_path", &c.SnapshotPath},
		{"start_delay_seconds", &c.StartDelaySeconds},
		{"gui", &c.GUI},
		{"hotkeys", &c.Hotkeys},
	}
}

func assign(ptr any, raw any) error {
	switch p := ptr.(type) {
	case *int:
		v, err := cast.ToIntE(raw)
		if err != nil {
			return err
		}
		*p = v
	case *float64:
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return err
		}
		*p = v
	case *bool:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return err
		}
		*p = v
	case *string:
		v, err := cast.ToStringE(raw)
		if err != nil {
			return err
		}
		*p = strings.TrimSpace(v)
	default:
		return fmt.Errorf("unsupported field type %T", ptr)
	}
	return nil
}

func valueOf(ptr any) any {
	switch p := ptr.(type) {
	case *int:
		return *p
	case *float64:
		return *p
	case *bool:
		return *p
	case *string:
		return *p
	}
	return nil
}

// Load reads configuration from the JSON file at path. Missing, malformed or
// out-of-range values fall back to their defaults and the file is rewritten
// with the repaired configuration. The returned error is only non-nil when
// that rewrite fails; the Config is always usable.
func Load(path string, logger *slog.Logger) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	regenerate := false
	if err := v.ReadInConfig(); err != nil {
		regenerate = true
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			logInfo(logger, "config file not found; writing defaults", "path", path)
		} else {
			logWarn(logger, "config file unreadable; using defaults", "path", path, "error", err)
		}
	}

	for _, f := range cfg.fields() {
		if !v.IsSet(f.key) {
			regenerate = true
			continue
		}
		def := valueOf(f.ptr)
		if err := assign(f.ptr, v.Get(f.key)); err != nil {
			logWarn(logger, "invalid config value; using default", "key", f.key, "default", def, "error", err)
			regenerate = true
		}
	}
	if err := cfg.Validate(); err != nil {
		logWarn(logger, "config values repaired", "error", err)
		regenerate = true
	}
	if regenerate {
		if err := cfg.Save(path); err != nil {
			return cfg, fmt.Errorf("config: regenerate %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	v := viper.New()
	v.SetConfigType("json")
	for _, f := range c.fields() {
		v.Set(f.key, valueOf(f.ptr))
	}
	if err := v.WriteConfigAs(path); err != nil {
		return err
	}
	return nil
}

// BindFlags registers one flag per configuration key on fs, using dashes
// instead of underscores (ring_inner_radius -> --ring-inner-radius).
func BindFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	for _, f := range d.fields() {
		name := flagName(f.key)
		switch p := f.ptr.(type) {
		case *int:
			fs.Int(name, *p, "overrides "+f.key)
		case *float64:
			fs.Float64(name, *p, "overrides "+f.key)
		case *bool:
			fs.Bool(name, *p, "overrides "+f.key)
		case *string:
			fs.String(name, *p, "overrides "+f.key)
		}
	}
}

// ApplyFlags copies every flag the user actually set on fs into c. Flag
// values are not persisted by Load/Save.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	v := viper.New()
	for _, f := range c.fields() {
		fl := fs.Lookup(flagName(f.key))
		if fl == nil || !fl.Changed {
			continue
		}
		if err := v.BindPFlag(f.key, fl); err != nil {
			return err
		}
		if err := assign(f.ptr, v.Get(f.key)); err != nil {
			return fmt.Errorf("flag --%s: %w", fl.Name, err)
		}
	}
	_ = c.Validate()
	return nil
}

func flagName(key string) string { return strings.ReplaceAll(key, "_", "-") }

func logInfo(l *slog.Logger, msg string, args ...any) {
	if l != nil {
		l.Info(msg, args...)
	}
}

func logWarn(l *slog.Logger, msg string, args ...any) {
	if l != nil {
		l.Warn(msg, args...)
	}
}
