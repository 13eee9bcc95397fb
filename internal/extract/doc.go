// Package extract produces the normalized mono PCM audio a recognizer needs
// from an arbitrary video container.
//
// ffmpeg gives no usable progress callback for this operation, so extraction
// animates a synthetic progress curve from a size-based time estimate while
// the real work blocks. The curve stops short of 100%; completion is always
// signalled by the extraction call itself.
package extract
