// Package app assembles capture, detection, dispatch and pacing into a
// runnable trigger and exposes the controls shared by the console, the
// hotkeys and the status window.
package app

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/ringtrigger/config"
	"github.com/soocke/ringtrigger/domain/action"
	"github.com/soocke/ringtrigger/domain/capture"
	"github.com/soocke/ringtrigger/domain/detect"
	"github.com/soocke/ringtrigger/domain/pacer"
	"github.com/soocke/ringtrigger/domain/snapshot"
	"github.com/soocke/ringtrigger/ui/model"
)

// ErrCaptureInit is returned by BuildContainer when the capture backend
// cannot produce a first sample. The process should exit non-zero.
var ErrCaptureInit = errors.New("app: capture initialization failed")

// Deps overrides platform collaborators. Zero fields are built from config.
type Deps struct {
	Backend  capture.Backend
	Injector action.Injector
	Spawner  action.Spawner
	Region   *image.Rectangle
}

// Container holds every long-lived component of a run.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Backend    capture.Backend
	Grabber    *capture.Grabber
	Injector   action.Injector
	Snapshots  *snapshot.Writer
	Dispatcher *action.Dispatcher
	Params     detect.Params
	Machine    *detect.Machine
	Pacer      *pacer.Pacer
	Loop       *Loop

	Run       *model.RunModel
	Detection *model.DetectionModel
	Session   *model.SessionModel
}

// BuildContainer constructs all components and probes the capture backend
// once. A failed probe returns an error wrapping ErrCaptureInit.
func BuildContainer(cfg *config.Config, logger *slog.Logger, deps Deps) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Run:       &model.RunModel{},
		Detection: model.NewDetectionModel(),
		Session:   model.NewSessionModel(),
	}

	c.Backend = deps.Backend
	if c.Backend == nil {
		b, err := capture.NewBackend(cfg.CaptureBackend)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCaptureInit, err)
		}
		c.Backend = b
	}
	var region image.Rectangle
	if deps.Region != nil {
		region = *deps.Region
	} else {
		r, err := capture.ResolveRegion(cfg.CaptureSize, cfg.CaptureX, cfg.CaptureY)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCaptureInit, err)
		}
		region = r
	}
	c.Grabber = capture.NewGrabber(c.Backend, region, logger)
	if err := c.Grabber.Probe(); err != nil {
		return nil, fmt.Errorf("%w: %s %v: %v", ErrCaptureInit, c.Backend.Name(), region, err)
	}

	c.Injector = deps.Injector
	if c.Injector == nil {
		inj, err := action.New(action.Options{
			Kind:       cfg.Injector,
			Key:        cfg.Key,
			SerialPort: cfg.SerialPort,
			SerialBaud: cfg.SerialBaud,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("app: key injector: %w", err)
		}
		c.Injector = inj
	}

	var saver action.SnapshotSaver
	if cfg.SaveSnapshots {
		c.Snapshots = snapshot.NewWriter(cfg.SnapshotPath, logger)
		saver = c.Snapshots
	}
	holdMin, holdMax := cfg.HoldRange()
	c.Dispatcher = action.NewDispatcher(c.Injector, cfg.Key, holdMin, holdMax, saver, deps.Spawner, logger)

	c.Params = detect.ParamsFromConfig(cfg)
	c.Machine = detect.NewMachine(c.Params, c.Dispatcher, logger)
	c.Machine.AddListener(c.Detection.OnTransition)

	c.Pacer = pacer.New(cfg.FrameInterval(), pacer.ParseMode(cfg.Pacing))
	c.Loop = NewLoop(c.Grabber, c.Machine, c.Run, c.Pacer.Interval(), logger)

	if logger != nil {
		logger.Info("container ready",
			"backend", c.Backend.Name(),
			"region", region.String(),
			"injector", c.Injector.Name(),
			"ring_center", c.Params.Ring.Center.String(),
			"interval", c.Pacer.Interval(),
			"pacing", c.Pacer.Mode().String(),
		)
	}
	return c, nil
}

// Close releases the key injector.
func (c *Container) Close() error {
	if c == nil || c.Injector == nil {
		return nil
	}
	return c.Injector.Close()
}
