// Package services defines the shared error taxonomy for videodub's external
// capabilities and pipeline stages.
//
// Fatal failures (missing input, extraction, transcription, serialization)
// are tagged with sentinel errors so callers can classify them with
// errors.Is. Translation-quality failures are deliberately absent: they are
// logged as warnings and never escalate past the translation chain.
package services
