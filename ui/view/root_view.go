package view

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/ringtrigger/config"
	"github.com/soocke/ringtrigger/domain/detect"
	"github.com/soocke/ringtrigger/ui/presenter"
	"github.com/soocke/ringtrigger/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView is the optional status window: phase, counters, running time,
// live preview and the pause/reset controls.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	Session SessionStats
	Preview CapturePreview

	StateLabel *LabelWidget
	StatsLabel *LabelWidget
	PauseBtn   *ButtonWidget
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build lays out the window. Handlers run on the Tk thread.
func (rv *RootView) Build(onPause, onReset, onExit func()) {
	if rv == nil {
		return
	}
	theme.Apply()

	rv.StateLabel = Label(Txt("Idle"), Width(18), Borderwidth(1), Relief("ridge"),
		Background(presenter.PhaseColor(detect.PhaseIdle)), Foreground(theme.ColorOnStatus))
	Grid(rv.StateLabel, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Session = NewSessionStats(0, 1)

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(3), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.PauseBtn = Button(Txt("Pause"), Command(onPause))
	Grid(rv.PauseBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Grid(Button(Txt("Reset"), Command(onReset)), In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Grid(Button(Txt("Exit"), Command(onExit)), In(btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.StatsLabel = Label(Txt(""), Justify("left"), Anchor("w"), Foreground(theme.ColorTextMuted))
	Grid(rv.StatsLabel, Row(1), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"))

	if rv.cfg != nil {
		info := fmt.Sprintf("region %dx%d @ %d,%d  ring %.1f-%.1f  %d fps %s  key %s",
			rv.cfg.CaptureSize, rv.cfg.CaptureSize, rv.cfg.CaptureX, rv.cfg.CaptureY,
			rv.cfg.RingInnerRadius, rv.cfg.RingOuterRadius, rv.cfg.FPS, rv.cfg.Pacing, rv.cfg.Key)
		Grid(Label(Txt(info), Anchor("w"), Foreground(theme.ColorText)), Row(2), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"))
	}
	rv.Preview = NewCapturePreview(3)
}

func (rv *RootView) SetPhase(p detect.Phase, text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text), Background(presenter.PhaseColor(p)))
	}
}

func (rv *RootView) SetStats(text string) {
	if rv != nil && rv.StatsLabel != nil {
		rv.StatsLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(session, total)
	}
}

func (rv *RootView) SetPauseLabel(text string) {
	if rv != nil && rv.PauseBtn != nil {
		rv.PauseBtn.Configure(Txt(text))
	}
}

func (rv *RootView) UpdateCapture(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateCapture(img)
	}
}

func (rv *RootView) UpdateSnapshot(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateSnapshot(img)
	}
}

// PreviewReset clears the live preview.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}

var (
	_ presenter.StatusView  = (*RootView)(nil)
	_ presenter.StatsView   = (*RootView)(nil)
	_ presenter.SessionView = (*RootView)(nil)
	_ presenter.ControlView = (*RootView)(nil)
	_ presenter.PreviewView = (*RootView)(nil)
)
