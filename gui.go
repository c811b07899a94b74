package main

import (
	"context"
	"time"

	"github.com/soocke/ringtrigger/app"
	"github.com/soocke/ringtrigger/ui/presenter"
	"github.com/soocke/ringtrigger/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const uiTick = 100 * time.Millisecond

// runGUI shows the status window and blocks until it is closed or ctx is
// cancelled. Closing the window cancels the run.
func runGUI(ctx context.Context, cancel context.CancelFunc, c *app.Container) {
	c.Grabber.SetPreview(true)
	defer c.Grabber.SetPreview(false)

	rv := view.NewRootView(c.Config, c.Logger)
	control := presenter.NewControlPresenter(c, c, rv)

	var afterID string
	closed := false
	exit := func() {
		if closed {
			return
		}
		closed = true
		cancel()
		if afterID != "" {
			TclAfterCancel(afterID)
		}
		Destroy(App)
	}
	App.WmTitle("Ring Trigger")
	WmProtocol(App, "WM_DELETE_WINDOW", exit)
	rv.Build(control.Toggle, control.Reset, exit)

	var snaps presenter.SnapshotSource
	if c.Snapshots != nil {
		snaps = c.Snapshots
	}
	loop := &presenter.Loop{
		Status:  presenter.NewStatusPresenter(c.Detection, rv, func() bool { return !c.Running() }),
		Session: presenter.NewSessionPresenter(c.Session, c.Run, rv),
		Stats:   presenter.NewStatsPresenter(c, rv),
		Preview: presenter.NewPreviewPresenter(c.Grabber, snaps, c.Params.Ring, rv),
		Control: control,
	}
	loop.Schedule = func() {
		if ctx.Err() != nil {
			exit()
			return
		}
		afterID = TclAfter(uiTick, loop.Tick)
	}
	loop.Tick()
	App.Wait()
}
