//go:build windows

package pacer

import "golang.org/x/sys/windows"

var (
	winmm         = windows.NewLazySystemDLL("winmm.dll")
	procTimeBegin = winmm.NewProc("timeBeginPeriod")
	procTimeEnd   = winmm.NewProc("timeEndPeriod")
)

// raiseTimerResolution asks for 1ms scheduler granularity for the lifetime
// of Run so relaxed sleeps land close to the requested deadline.
func raiseTimerResolution() func() {
	if procTimeBegin.Find() != nil {
		return func() {}
	}
	procTimeBegin.Call(1)
	return func() { procTimeEnd.Call(1) }
}
