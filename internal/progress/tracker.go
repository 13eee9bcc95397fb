package progress

import "sync"

// Observer receives progress notifications from a Tracker. Implementations
// must be fast and non-blocking: dispatch happens under the Tracker's lock.
type Observer interface {
	OnProgress(value float64, message string)
	OnComplete()
}

// Tracker holds a mutable progress value and broadcasts it to zero or more
// observers. It is safe for a background estimation goroutine to call Update
// while the owning goroutine blocks on real work.
type Tracker struct {
	mu        sync.Mutex
	name      string
	total     float64
	current   float64
	completed bool
	observers []Observer
}

// NewTracker constructs a tracker for the named operation. A non-positive
// total defaults to 100.
func NewTracker(name string, total float64) *Tracker {
	if total <= 0 {
		total = 100
	}
	return &Tracker{name: name, total: total}
}

// Name returns the operation name supplied at construction.
func (t *Tracker) Name() string {
	return t.name
}

// Total returns the tracker's terminal value.
func (t *Tracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Current returns the last clamped progress value.
func (t *Tracker) Current() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Attach registers an observer for subsequent updates.
func (t *Tracker) Attach(observer Observer) {
	if observer == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, observer)
}

// Update clamps value to [0, total], stores it, and notifies every observer.
// Updates arriving after Complete are dropped so no observer sees a
// post-completion value.
func (t *Tracker) Update(value float64, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.completed {
		return
	}
	t.current = clamp(value, t.total)
	for _, observer := range t.observers {
		observer.OnProgress(t.current, message)
	}
}

// Increment advances the current value by delta.
func (t *Tracker) Increment(delta float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.completed {
		return
	}
	t.current = clamp(t.current+delta, t.total)
	for _, observer := range t.observers {
		observer.OnProgress(t.current, "")
	}
}

// Complete forces the value to total and sends a completion notification to
// every observer. Calling it again re-notifies rather than panicking; callers
// own the exactly-once discipline, the tracker only guarantees that updates
// never interleave after the first completion.
func (t *Tracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = t.total
	if !t.completed {
		t.completed = true
		for _, observer := range t.observers {
			observer.OnProgress(t.current, "")
		}
	}
	for _, observer := range t.observers {
		observer.OnComplete()
	}
}

func clamp(value, total float64) float64 {
	if value < 0 {
		return 0
	}
	if value > total {
		return total
	}
	return value
}
