//go:build !windows

package pacer

func raiseTimerResolution() func() { return func() {} }
