// Package captions renders timed transcript segments as SRT subtitle files.
package captions
