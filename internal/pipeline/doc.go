// Package pipeline sequences a subtitle generation run: extract audio,
// transcribe it, optionally translate the segments, and serialize the SRT
// file beside the input video.
//
// The stages behind the sequence are injected as small interfaces so runs
// can be exercised without ffmpeg, whisper, or translation models installed.
// Whatever the outcome, the temporary audio artifact is removed before
// Generate returns.
package pipeline
