package model

import (
	"testing"
	"time"
)

func TestSessionModel_PauseResume(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	if s, tot := m.Values(); s != 5*time.Second || tot != 5*time.Second {
		t.Fatalf("expected 5s/5s, got %v/%v", s, tot)
	}

	m.OnTick(false, base.Add(6*time.Second))
	s, tot := m.Values()
	if s != 6*time.Second || tot != 6*time.Second {
		t.Fatalf("pause must close the stretch at 6s, got %v/%v", s, tot)
	}
	m.OnTick(false, base.Add(9*time.Second))
	if s2, tot2 := m.Values(); s2 != s || tot2 != tot {
		t.Fatalf("paused ticks must not change durations")
	}

	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	if s, tot := m.Values(); s != 3*time.Second || tot != 9*time.Second {
		t.Fatalf("expected 3s/9s, got %v/%v", s, tot)
	}
}

func TestSessionModel_NilSafe(t *testing.T) {
	var m *SessionModel
	m.OnTick(true, time.Now())
	if s, tot := m.Values(); s != 0 || tot != 0 {
		t.Fatalf("nil model must report zero")
	}
}
