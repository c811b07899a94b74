package presenter

// RunControl pauses and resumes detection.
type RunControl interface {
	Running() bool
	SetPaused(bool) bool
}

// Resetter abandons the current detection episode.
type Resetter interface{ RequestReset() }

// ControlView reflects pause state changes.
type ControlView interface {
	SetPauseLabel(text string)
	PreviewReset()
}

// ControlPresenter handles the pause/resume and reset buttons.
type ControlPresenter struct {
	run   RunControl
	reset Resetter
	view  ControlView
	label string
}

func NewControlPresenter(run RunControl, reset Resetter, view ControlView) *ControlPresenter {
	return &ControlPresenter{run: run, reset: reset, view: view}
}

// Pause stops frame evaluation and drops any open episode. Idempotent.
func (c *ControlPresenter) Pause() {
	if c == nil || c.run == nil || c.view == nil {
		return
	}
	if !c.run.SetPaused(true) {
		return
	}
	if c.reset != nil {
		c.reset.RequestReset()
	}
	c.setLabel("Resume")
	c.view.PreviewReset()
}

// Resume restarts frame evaluation. Idempotent.
func (c *ControlPresenter) Resume() {
	if c == nil || c.run == nil || c.view == nil {
		return
	}
	if !c.run.SetPaused(false) {
		return
	}
	c.setLabel("Pause")
}

// Toggle flips between Pause and Resume.
func (c *ControlPresenter) Toggle() {
	if c == nil || c.run == nil {
		return
	}
	if c.run.Running() {
		c.Pause()
		return
	}
	c.Resume()
}

// Reset forces the detector back to idle.
func (c *ControlPresenter) Reset() {
	if c != nil && c.reset != nil {
		c.reset.RequestReset()
	}
}

// Sync updates the button label after the run flag changed elsewhere
// (hotkey or console).
func (c *ControlPresenter) Sync() {
	if c == nil || c.run == nil || c.view == nil {
		return
	}
	if c.run.Running() {
		c.setLabel("Pause")
	} else {
		c.setLabel("Resume")
	}
}

func (c *ControlPresenter) setLabel(text string) {
	if text == c.label {
		return
	}
	c.label = text
	c.view.SetPauseLabel(text)
}
