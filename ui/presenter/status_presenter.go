package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/soocke/ringtrigger/domain/detect"
	"github.com/soocke/ringtrigger/ui/model"
)

// DetectionSource exposes the mirrored detection status.
type DetectionSource interface {
	Snapshot() model.DetectionView
}

// StatusView shows the current phase.
type StatusView interface {
	SetPhase(p detect.Phase, text string)
}

// StatusPresenter reflects the detection phase in the view. The label only
// changes when the phase or the displayed second changes.
type StatusPresenter struct {
	src     DetectionSource
	view    StatusView
	latest  string
	pausedF func() bool
}

func NewStatusPresenter(src DetectionSource, view StatusView, paused func() bool) *StatusPresenter {
	return &StatusPresenter{src: src, view: view, pausedF: paused}
}

func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	v := p.src.Snapshot()
	text := StatusText(v, now)
	if p.pausedF != nil && p.pausedF() {
		text = "Paused"
	}
	if text == p.latest {
		return
	}
	p.latest = text
	p.view.SetPhase(v.Phase, text)
}

// StatusText formats the status line, e.g. "Armed 0.4s".
func StatusText(v model.DetectionView, now time.Time) string {
	name := v.Phase.String()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	if v.Phase == detect.PhaseIdle || v.Since.IsZero() {
		return name
	}
	return fmt.Sprintf("%s %.1fs", name, now.Sub(v.Since).Seconds())
}

// PhaseColor maps a phase to a status background color.
func PhaseColor(p detect.Phase) string {
	switch p {
	case detect.PhaseArmed:
		return "#f59e0b"
	case detect.PhaseTriggered:
		return "#dc2626"
	case detect.PhaseCooldown:
		return "#2563eb"
	default:
		return "#10b981"
	}
}
