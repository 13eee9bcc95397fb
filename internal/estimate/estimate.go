package estimate

import (
	"context"
	"time"

	"videodub/internal/media/ffprobe"
)

const (
	// extractionSecondsPerMB is the linear cost of demuxing one megabyte.
	extractionSecondsPerMB = 0.1
	// extractionSafetyFactor pads the linear model for slow disks.
	extractionSafetyFactor = 3.0
	// defaultTranscriptionFactor covers unknown model classes.
	defaultTranscriptionFactor = 3.0
)

// transcriptionFactors maps a Whisper model class to its realtime multiple.
var transcriptionFactors = map[string]float64{
	"tiny":     2.0,
	"base":     2.5,
	"small":    3.0,
	"medium":   3.5,
	"large":    4.0,
	"large-v2": 4.0,
	"large-v3": 4.2,
}

// ExtractionTime predicts the audio extraction duration for an input of the
// given byte size.
func ExtractionTime(byteSize int64) time.Duration {
	if byteSize <= 0 {
		return 0
	}
	mb := float64(byteSize) / (1 << 20)
	seconds := mb * extractionSecondsPerMB * extractionSafetyFactor
	return time.Duration(seconds * float64(time.Second))
}

// TranscriptionTime predicts how long transcribing audio of the given
// duration takes for the named model class. Unknown classes use a middle
// factor.
func TranscriptionTime(duration time.Duration, modelClass string) time.Duration {
	if duration <= 0 {
		return 0
	}
	factor, ok := transcriptionFactors[modelClass]
	if !ok {
		factor = defaultTranscriptionFactor
	}
	return time.Duration(float64(duration) * factor)
}

// Clamp bounds an estimate to [0, ceiling]. A non-positive ceiling leaves the
// estimate untouched.
func Clamp(estimate, ceiling time.Duration) time.Duration {
	if estimate < 0 {
		return 0
	}
	if ceiling > 0 && estimate > ceiling {
		return ceiling
	}
	return estimate
}

// ModelFactors returns a copy of the model class factor table, sorted use is
// up to the caller.
func ModelFactors() map[string]float64 {
	out := make(map[string]float64, len(transcriptionFactors))
	for class, factor := range transcriptionFactors {
		out[class] = factor
	}
	return out
}

// ProbeDuration reads the media duration via ffprobe. It tries stream-level
// metadata first, then the container duration, and reports ok=false instead
// of an error when neither is available.
func ProbeDuration(ctx context.Context, ffprobeBinary, path string) (time.Duration, bool) {
	result, err := ffprobe.Inspect(ctx, ffprobeBinary, path)
	if err != nil {
		return 0, false
	}
	if seconds := result.StreamDurationSeconds(); seconds > 0 {
		return time.Duration(seconds * float64(time.Second)), true
	}
	if seconds := result.ContainerDurationSeconds(); seconds > 0 {
		return time.Duration(seconds * float64(time.Second)), true
	}
	return 0, false
}
