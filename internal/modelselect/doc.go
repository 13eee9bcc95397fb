// Package modelselect picks a Whisper model class and compute device from
// host resources.
//
// Choose is a pure function over an explicit Resources snapshot so the
// recommendation can be tested without hardware and is computed at the point
// of use, never as an import-time side effect.
package modelselect
