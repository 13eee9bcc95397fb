// Command videodub generates transcribed and translated SRT subtitle files
// from a video's audio track.
package main
