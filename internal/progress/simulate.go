package progress

import (
	"fmt"
	"time"
)

const (
	// simulatedCeiling is the fraction of the total a simulated curve may
	// claim; the remaining headroom belongs to real completion.
	simulatedCeiling = 0.9
	// simulatedTick bounds how stale the curve and its stop check may get.
	simulatedTick = 250 * time.Millisecond
)

// Simulate animates the tracker toward 90% of its total over the estimated
// duration on a background goroutine. It returns a channel closed when the
// animator exits. The caller closes stop when the real work finishes, waits
// on the returned channel (with a timeout of its choosing), and calls
// Complete on its own goroutine; the simulation never claims completion
// itself. A nil tracker just parks until stop closes.
func Simulate(tracker *Tracker, estimated time.Duration, stop <-chan struct{}) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if tracker == nil {
			<-stop
			return
		}
		if estimated <= 0 {
			estimated = time.Second
		}
		ceiling := tracker.Total() * simulatedCeiling
		message := fmt.Sprintf("~%ds estimated", int(estimated.Seconds()))
		started := time.Now()
		ticker := time.NewTicker(simulatedTick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				value := float64(time.Since(started)) / float64(estimated) * ceiling
				if value > ceiling {
					value = ceiling
				}
				tracker.Update(value, message)
			}
		}
	}()
	return finished
}
