// Package language normalizes and describes the language codes used for
// transcription and translation model selection.
package language
