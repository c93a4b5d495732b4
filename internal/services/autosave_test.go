package services

import (
	"testing"
)

func TestAutoSaveDefaultInterval(t *testing.T) {
	w, _ := newTestWorkspace(t)

	s := NewAutoSaveService(w, 0)
	if s.intervalSecs != 30 {
		t.Errorf("interval = %d, expected fallback of 30", s.intervalSecs)
	}

	s = NewAutoSaveService(w, 10)
	if s.intervalSecs != 10 {
		t.Errorf("interval = %d, expected 10", s.intervalSecs)
	}
}

func TestAutoSaveStartStop(t *testing.T) {
	w, ps := newTestWorkspace(t)
	w.SetBuffers(Buffers{HTML: "<p>draft</p>"})

	s := NewAutoSaveService(w, 3600)
	s.Start()
	defer s.Stop()

	// The scheduler fires on its period, not at start; no snapshot yet.
	snapshot, err := ps.LoadAutoSaveSnapshot()
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snapshot != nil {
		t.Error("no snapshot expected before the first tick")
	}

	// A manual snapshot goes through the same path the timer uses.
	if err := w.Snapshot(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	snapshot, _ = ps.LoadAutoSaveSnapshot()
	if snapshot == nil || snapshot.HTML != "<p>draft</p>" {
		t.Errorf("snapshot = %+v", snapshot)
	}
}

func TestAutoSaveStopWithoutStart(t *testing.T) {
	w, _ := newTestWorkspace(t)
	s := NewAutoSaveService(w, 30)
	// Must not panic.
	s.Stop()
}
