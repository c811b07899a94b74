package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows running time for the current stretch and in total.
type SessionStats interface {
	SetSession(session, total time.Duration)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	last       [2]int
}

// NewSessionStats grids two labels at (row, col) and (row, col+1).
func NewSessionStats(row, col int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(16)), totalLbl: Label(Width(16)), last: [2]int{-1, -1}}
	Grid(s.sessionLbl, Row(row), Column(col), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(col+1), Sticky("w"), Padx("0.2m"))
	s.SetSession(0, 0)
	return s
}

func (s *sessionStats) SetSession(session, total time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	sec, tot := int(session.Seconds()), int(total.Seconds())
	if s.last == [2]int{sec, tot} {
		return
	}
	s.last = [2]int{sec, tot}
	s.sessionLbl.Configure(Txt("Running: " + clock(sec)))
	s.totalLbl.Configure(Txt("Total: " + clock(tot)))
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
