package progress

import (
	"testing"
	"time"
)

func (r *recordingObserver) snapshot() ([]float64, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.values...), r.completes
}

func TestSimulateApproachesCeilingWithoutCompleting(t *testing.T) {
	tracker := NewTracker("working", 100)
	observer := &recordingObserver{}
	tracker.Attach(observer)

	stop := make(chan struct{})
	finished := Simulate(tracker, 100*time.Millisecond, stop)

	time.Sleep(4 * simulatedTick)
	close(stop)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("animator did not stop")
	}

	values, completions := observer.snapshot()
	if completions != 0 {
		t.Errorf("simulation must never complete the tracker, got %d completions", completions)
	}
	if len(values) == 0 {
		t.Fatal("expected animated updates")
	}
	for _, value := range values {
		if value > 90 {
			t.Errorf("value %v exceeds the 90%% ceiling", value)
		}
	}
	// With a 100ms estimate and several ticks elapsed the curve should have
	// saturated at the ceiling.
	if last := values[len(values)-1]; last != 90 {
		t.Errorf("final animated value = %v, want 90", last)
	}
}

func TestSimulateNilTrackerJustWaits(t *testing.T) {
	stop := make(chan struct{})
	finished := Simulate(nil, time.Second, stop)
	select {
	case <-finished:
		t.Fatal("animator exited before stop")
	case <-time.After(20 * time.Millisecond):
	}
	close(stop)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("animator did not stop")
	}
}
