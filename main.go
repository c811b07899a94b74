package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soocke/ringtrigger/app"
	"github.com/soocke/ringtrigger/config"
	"github.com/soocke/ringtrigger/debug"
	"github.com/soocke/ringtrigger/ui/console"
	"github.com/soocke/ringtrigger/ui/hotkey"
)

func main() { os.Exit(run()) }

func run() int {
	fs := pflag.NewFlagSet("ringtrigger", pflag.ExitOnError)
	cfgPath := fs.StringP("config", "c", config.DefaultPath, "path to the JSON configuration file")
	config.BindFlags(fs)
	_ = fs.Parse(os.Args[1:])

	boot := NewLogger(slog.LevelInfo)
	cfg, err := config.Load(*cfgPath, boot)
	if err != nil {
		boot.Warn("config not persisted", "error", err)
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		boot.Error("invalid flag", "error", err)
		return 2
	}
	logger := NewLogger(parseLevel(cfg.LogLevel, cfg.Debug))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c, err := app.BuildContainer(cfg, logger, app.Deps{})
	if err != nil {
		logger.Error("startup failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close injector", "error", err)
		}
	}()

	console.Banner(os.Stdout, cfg, c.Backend.Name(), c.Injector.Name())

	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 5*time.Second, logger)
		debug.StartMemLogger(ctx, 5*time.Second, logger)
		debug.StartStatsLogger(ctx, 5*time.Second, func() any { return c.Counters() }, logger)
	}
	if cfg.Hotkeys {
		err := hotkey.Listen(ctx, logger, func(a hotkey.Action) {
			switch a {
			case hotkey.TogglePause:
				c.TogglePause()
			case hotkey.Reset:
				c.RequestReset()
			}
		})
		if err != nil {
			logger.Warn("hotkeys unavailable", "error", err)
		}
	}
	go func() {
		if err := console.ReadCommands(ctx, os.Stdin, os.Stdout, consoleControl{c, cancel}); err != nil {
			logger.Warn("console input closed", "error", err)
		}
	}()

	if err := console.Countdown(ctx, os.Stdout, cfg.StartDelaySeconds); err != nil {
		return 0
	}

	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()
	if cfg.GUI {
		// Tk must own the main goroutine.
		runGUI(ctx, cancel, c)
		cancel()
	}
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("capture loop", "error", err)
		return 1
	}
	logger.Info("stopped", "stats", c.Counters())
	return 0
}

// consoleControl adds Quit to the container controls.
type consoleControl struct {
	*app.Container
	quit context.CancelFunc
}

func (cc consoleControl) Quit() { cc.quit() }
