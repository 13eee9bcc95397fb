package estimate

import (
	"context"
	"testing"
	"time"
)

func TestExtractionTimeLinearModel(t *testing.T) {
	tests := []struct {
		name     string
		byteSize int64
		want     time.Duration
	}{
		{"zero", 0, 0},
		{"negative", -10, 0},
		{"one MB", 1 << 20, 300 * time.Millisecond},
		{"hundred MB", 100 << 20, 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractionTime(tt.byteSize); got != tt.want {
				t.Errorf("ExtractionTime(%d) = %v, want %v", tt.byteSize, got, tt.want)
			}
		})
	}
}

func TestTranscriptionTimeFactors(t *testing.T) {
	minute := time.Minute
	tests := []struct {
		model string
		want  time.Duration
	}{
		{"tiny", 2 * minute},
		{"base", 150 * time.Second},
		{"small", 3 * minute},
		{"medium", 210 * time.Second},
		{"large", 4 * minute},
		{"large-v3", time.Duration(4.2 * float64(minute))},
		{"unheard-of", 3 * minute},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := TranscriptionTime(minute, tt.model); got != tt.want {
				t.Errorf("TranscriptionTime(1m, %q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestTranscriptionTimeNonPositiveDuration(t *testing.T) {
	if got := TranscriptionTime(0, "small"); got != 0 {
		t.Errorf("TranscriptionTime(0) = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		estimate time.Duration
		ceiling  time.Duration
		want     time.Duration
	}{
		{"under ceiling", 10 * time.Second, 30 * time.Second, 10 * time.Second},
		{"over ceiling", 90 * time.Second, 30 * time.Second, 30 * time.Second},
		{"no ceiling", 90 * time.Second, 0, 90 * time.Second},
		{"negative estimate", -time.Second, 30 * time.Second, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.estimate, tt.ceiling); got != tt.want {
				t.Errorf("Clamp(%v, %v) = %v, want %v", tt.estimate, tt.ceiling, got, tt.want)
			}
		})
	}
}

func TestModelFactorsIsACopy(t *testing.T) {
	factors := ModelFactors()
	factors["tiny"] = 99
	if got := TranscriptionTime(time.Second, "tiny"); got != 2*time.Second {
		t.Errorf("mutating the returned map must not affect estimates, got %v", got)
	}
}

func TestProbeDurationMissingBinary(t *testing.T) {
	// A nonexistent binary must report absence, never an error or panic.
	if _, ok := ProbeDuration(context.Background(), "definitely-not-ffprobe-bin", "/nope.mp4"); ok {
		t.Fatal("expected ok=false for missing binary")
	}
}
