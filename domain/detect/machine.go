package detect

import (
	"image"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/ringtrigger/config"
)

// Grouping selects how arming candidates are qualified.
type Grouping int

const (
	// GroupConnected keeps 4-connected clusters of at least MinWhite pixels.
	GroupConnected Grouping = iota
	// GroupCount keeps every candidate once their total reaches MinWhite.
	GroupCount
)

// Params is the immutable detection configuration.
type Params struct {
	Ring        Ring
	Arm         Predicate
	Confirm     Predicate
	Grouping    Grouping
	MinWhite    int
	MinRed      int
	ArmTimeout  time.Duration
	ResetDelay  time.Duration
	SafetyRects []image.Rectangle
}

// ParamsFromConfig derives detection parameters for a square sample of
// cfg.CaptureSize pixels.
func ParamsFromConfig(cfg *config.Config) Params {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	size := image.Pt(cfg.CaptureSize, cfg.CaptureSize)
	grouping := GroupConnected
	if cfg.Grouping == config.GroupingCount {
		grouping = GroupCount
	}
	red := RedRule{Min: uint8(cfg.RedThreshold), OtherMax: cfg.OtherChannelMax, Dominance: uint8(cfg.RedDominance)}
	return Params{
		Ring:        NewRing(size, image.Pt(cfg.RingOffsetX, cfg.RingOffsetY), cfg.RingInnerRadius, cfg.RingOuterRadius),
		Arm:         WhiteAtLeast(uint8(cfg.WhiteThreshold)),
		Confirm:     red.Predicate(),
		Grouping:    grouping,
		MinWhite:    cfg.MinWhitePixels,
		MinRed:      cfg.MinRedPixels,
		ArmTimeout:  cfg.ArmTimeout(),
		ResetDelay:  cfg.ResetDelay(),
		SafetyRects: cfg.SafetyRects(),
	}
}

// Machine is the arm -> confirm -> cooldown detector.
// Not safe for concurrent use; call Step, Reset and AddListener from the
// single goroutine that drives capture. Phase and Stats may be read from
// any goroutine.
type Machine struct {
	p         Params
	logger    *slog.Logger
	sink      TriggerSink
	listeners []Listener

	phase      atomicPhase
	remembered []image.Point
	deadline   time.Time
	cooldown   time.Time
	resumeAt   time.Time
	episode    uuid.UUID
	epLog      *slog.Logger
	bestRed    int

	stats counters
}

// NewMachine returns a machine in PhaseIdle. sink may be nil.
func NewMachine(p Params, sink TriggerSink, logger *slog.Logger) *Machine {
	if p.MinWhite < 1 {
		p.MinWhite = 1
	}
	if p.MinRed < 1 {
		p.MinRed = 1
	}
	return &Machine{p: p, sink: sink, logger: logger}
}

// AddListener registers a transition listener.
func (m *Machine) AddListener(l Listener) { m.listeners = append(m.listeners, l) }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase.Load() }

// Stats returns the detection counters.
func (m *Machine) Stats() Stats { return m.stats.snapshot() }

// Remembered returns a copy of the coordinates locked at arming time.
func (m *Machine) Remembered() []image.Point { return slices.Clone(m.remembered) }

// Deadline returns the confirm deadline of the current episode (zero when idle).
func (m *Machine) Deadline() time.Time { return m.deadline }

// Reset abandons any episode and returns to idle immediately.
func (m *Machine) Reset() {
	if m.Phase() != PhaseIdle && m.epLog != nil {
		m.epLog.Info("episode reset")
	}
	m.resumeAt = time.Time{}
	m.toIdle()
}

// Step evaluates one captured sample taken at now.
func (m *Machine) Step(frame *image.RGBA, now time.Time) Result {
	if frame == nil {
		return Result{Phase: m.Phase()}
	}
	if m.Phase() == PhaseCooldown {
		if now.Before(m.cooldown) {
			return Result{Phase: PhaseCooldown}
		}
		m.toIdle()
	}
	switch m.Phase() {
	case PhaseArmed:
		return m.stepArmed(frame, now)
	default:
		return m.stepIdle(frame, now)
	}
}

func (m *Machine) stepIdle(frame *image.RGBA, now time.Time) Result {
	if now.Before(m.resumeAt) {
		return Result{Phase: PhaseIdle}
	}
	union := m.qualify(m.p.Ring.Scan(frame, m.p.Arm))
	if len(union) == 0 {
		return Result{Phase: PhaseIdle}
	}
	m.remembered = union
	m.deadline = now.Add(m.p.ArmTimeout)
	m.episode = uuid.New()
	m.bestRed = 0
	if m.logger != nil {
		m.epLog = m.logger.With("episode", m.episode.String())
		m.epLog.Info("armed", "pixels", len(union), "deadline_ms", m.p.ArmTimeout.Milliseconds())
	}
	m.stats.episodes.Add(1)
	m.transition(PhaseArmed)
	return Result{Phase: PhaseArmed}
}

func (m *Machine) qualify(candidates []image.Point) []image.Point {
	switch m.p.Grouping {
	case GroupCount:
		if len(candidates) >= m.p.MinWhite {
			return candidates
		}
		return nil
	default:
		return Union(Group(candidates, m.p.MinWhite))
	}
}

func (m *Machine) stepArmed(frame *image.RGBA, now time.Time) Result {
	if now.After(m.deadline) {
		m.stats.timeouts.Add(1)
		if m.epLog != nil {
			m.epLog.Info("arm timeout", "best_red", m.bestRed)
		}
		return m.abort(now)
	}
	for _, r := range m.p.SafetyRects {
		if !IsBlack(frame, r) {
			m.stats.safetyResets.Add(1)
			if m.epLog != nil {
				m.epLog.Info("safety region not black; resetting", "rect", r.String())
			}
			return m.abort(now)
		}
	}
	var confirmed []image.Point
	for _, p := range m.remembered {
		if !inSample(frame, p) {
			continue
		}
		if m.p.Confirm(rgbAt(frame, p.X, p.Y)) {
			confirmed = append(confirmed, p)
		}
	}
	if len(confirmed) > m.bestRed {
		m.bestRed = len(confirmed)
		if m.epLog != nil {
			m.epLog.Debug("confirm progress", "red", len(confirmed), "need", m.p.MinRed)
		}
	}
	if len(confirmed) < m.p.MinRed {
		return Result{Phase: PhaseArmed}
	}
	return m.trigger(frame, now, confirmed)
}

func (m *Machine) trigger(frame *image.RGBA, now time.Time, confirmed []image.Point) Result {
	m.transition(PhaseTriggered)
	m.stats.triggers.Add(1)
	if m.epLog != nil {
		m.epLog.Info("triggered", "red", len(confirmed), "remembered", len(m.remembered))
	}
	if m.sink != nil {
		m.sink.Dispatch(TriggerEvent{
			Episode:     m.episode,
			At:          now,
			Frame:       frame,
			Remembered:  slices.Clone(m.remembered),
			Confirmed:   confirmed,
			SafetyRects: slices.Clone(m.p.SafetyRects),
		})
	}
	m.cooldown = now.Add(m.p.ResetDelay)
	m.transition(PhaseCooldown)
	return Result{Phase: PhaseCooldown, Triggered: true, Pause: m.p.ResetDelay}
}

// abort ends the episode without triggering and blocks re-arming for the
// reset delay.
func (m *Machine) abort(now time.Time) Result {
	m.resumeAt = now.Add(m.p.ResetDelay)
	m.toIdle()
	return Result{Phase: PhaseIdle, Pause: m.p.ResetDelay}
}

func (m *Machine) toIdle() {
	m.remembered = nil
	m.deadline = time.Time{}
	m.cooldown = time.Time{}
	m.epLog = nil
	m.transition(PhaseIdle)
}

func (m *Machine) transition(next Phase) {
	prev := m.Phase()
	if prev == next {
		return
	}
	m.phase.Store(next)
	if m.logger != nil {
		m.logger.Debug("detection phase transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}
