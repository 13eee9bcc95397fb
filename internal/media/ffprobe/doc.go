// Package ffprobe wraps the ffprobe binary for media metadata inspection.
package ffprobe
