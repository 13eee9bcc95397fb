// Package estimate predicts how long external media operations will take.
//
// The predictions feed simulated progress bars; they only need to be in the
// right ballpark, and callers clamp them where a wild guess would produce a
// misleading ETA on trivial inputs.
package estimate
