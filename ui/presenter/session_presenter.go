package presenter

import (
	"time"

	"github.com/soocke/ringtrigger/ui/model"
)

// RunningModel reports whether detection is unpaused.
type RunningModel interface{ Running() bool }

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter feeds the session model from the run flag and pushes
// durations to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	run  RunningModel
	view SessionView
}

func NewSessionPresenter(sess *model.SessionModel, run RunningModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, run: run, view: view}
}

func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.run == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.run.Running(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
