package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputNotFound marks pre-flight failures for missing input media.
	ErrInputNotFound = errors.New("input not found")
	// ErrExtraction marks audio extraction failures after both the library
	// path and the subprocess fallback were exhausted.
	ErrExtraction = errors.New("extraction error")
	// ErrTranscription marks failures propagated from the speech recognizer.
	ErrTranscription = errors.New("transcription error")
	// ErrSerialization marks I/O failures while writing the caption file.
	ErrSerialization = errors.New("serialization error")
	// ErrValidation marks structural precondition failures.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable component wiring.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures launching or running a helper binary.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
