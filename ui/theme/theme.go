// Package theme holds the status window palette.
package theme

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg        = "#f7f9fb"
	ColorSurface   = "#ffffff"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
	ColorOnStatus  = "#ffffff"
)

// Apply activates the base theme and window background. Call once before
// building widgets.
func Apply() {
	_ = ActivateTheme("azure light")
	App.Configure(Background(ColorBg))
}
