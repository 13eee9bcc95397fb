// Package progress decouples progress production from progress display.
//
// External transcoding and transcription tools give no granular progress
// callback, so callers animate a Tracker from a time estimate instead of a
// measurement. That simulation is a deliberate approximation: the bar exists
// to show the run is alive, not to promise accuracy.
package progress
