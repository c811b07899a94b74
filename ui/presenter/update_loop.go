package presenter

import "time"

// Loop drives the presenters from the Tk event loop. The zero value is
// usable and every field is optional.
type Loop struct {
	Status   *StatusPresenter
	Session  *SessionPresenter
	Stats    *StatsPresenter
	Preview  *PreviewPresenter
	Control  *ControlPresenter
	Schedule func()
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	l.Status.Tick(now)
	l.Session.Tick(now)
	l.Stats.Tick(now)
	l.Preview.Tick()
	l.Control.Sync()
	if l.Schedule != nil {
		l.Schedule()
	}
}
