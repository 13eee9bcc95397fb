package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := fmt.Errorf("ffmpeg exited with status 1")
	err := Wrap(ErrExtraction, "extract", "fallback", "subprocess path failed", cause)

	if !errors.Is(err, ErrExtraction) {
		t.Errorf("errors.Is(ErrExtraction) = false for %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("wrapped cause lost in %v", err)
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := Wrap(nil, "translate", "load", "helper missing", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Errorf("nil marker should default to ErrExternalTool, got %v", err)
	}
}

func TestWrapDetailComposition(t *testing.T) {
	tests := []struct {
		name      string
		stage     string
		operation string
		message   string
		want      string
	}{
		{"full", "transcribe", "run", "whisper failed", "transcription error: transcribe: run: whisper failed"},
		{"empty parts", "", "", "", "transcription error: service failure"},
		{"stage only", "serialize", "", "", "transcription error: serialize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(ErrTranscription, tt.stage, tt.operation, tt.message, nil)
			if got.Error() != tt.want {
				t.Errorf("Wrap() = %q, want %q", got.Error(), tt.want)
			}
		})
	}
}
