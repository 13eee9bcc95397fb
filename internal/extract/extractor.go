package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/gofrs/flock"
	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"videodub/internal/estimate"
	"videodub/internal/logging"
	"videodub/internal/progress"
	"videodub/internal/services"
)

const (
	// SampleRate is the fixed output rate recognizers expect.
	SampleRate = 16000
	// Channels is mono output.
	Channels = 1

	// tempAudioName is the fixed artifact name inside the scratch dir. Runs
	// sharing a scratch dir serialize on the flock below rather than
	// inventing unique names.
	tempAudioName = "videodub_audio.wav"

	// animationCeiling mirrors the synthetic curve's 90% cap on a tracker
	// with the default total of 100.
	animationCeiling = 90.0
	// estimateCeiling caps the fake ETA so tiny files do not show a
	// half-minute bar for a sub-second job.
	estimateCeiling = 30 * time.Second
	// tickInterval is the animation cadence, matching the curve's poll rate.
	tickInterval = 250 * time.Millisecond
	// joinTimeout bounds how long completion waits for the animator.
	joinTimeout = time.Second
)

// Extractor drives ffmpeg to produce the temporary audio artifact.
type Extractor struct {
	scratchDir   string
	ffmpegBinary string
	sampleRate   int
	channels     int
	logger       *slog.Logger

	// primary and runner are replaceable for tests.
	primary func(videoPath, audioPath string) error
	runner  func(ctx context.Context, name string, args ...string) error
}

// NewExtractor creates an extractor writing into scratchDir. An empty
// ffmpegBinary resolves "ffmpeg" from PATH for the fallback subprocess.
func NewExtractor(scratchDir, ffmpegBinary string, logger *slog.Logger) *Extractor {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	e := &Extractor{
		scratchDir:   scratchDir,
		ffmpegBinary: ffmpegBinary,
		sampleRate:   SampleRate,
		channels:     Channels,
		logger:       logging.NewComponentLogger(logger, "extract"),
	}
	e.primary = e.runLibrary
	e.runner = runCommand
	return e
}

// WithAudioFormat overrides the output sample rate and channel count.
// Non-positive values keep the defaults.
func (e *Extractor) WithAudioFormat(sampleRate, channels int) {
	if sampleRate > 0 {
		e.sampleRate = sampleRate
	}
	if channels > 0 {
		e.channels = channels
	}
}

// WithPrimary replaces the library-level extraction call (for testing).
func (e *Extractor) WithPrimary(primary func(videoPath, audioPath string) error) {
	e.primary = primary
}

// WithCommandRunner replaces the subprocess fallback runner (for testing).
func (e *Extractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.runner = runner
}

// AudioPath returns the fixed temporary artifact path for this extractor.
func (e *Extractor) AudioPath() (string, error) {
	absDir, err := filepath.Abs(e.scratchDir)
	if err != nil {
		return "", fmt.Errorf("resolve scratch dir: %w", err)
	}
	return filepath.Join(absDir, tempAudioName), nil
}

// Extract demuxes videoPath into a mono 16 kHz WAV file and returns its
// path. A pre-existing artifact at that path is overwritten without
// prompting; on failure no artifact is left behind.
// The tracker, when non-nil, is animated from a size-based
// estimate and completed exactly once on this goroutine before returning,
// success or failure.
func (e *Extractor) Extract(ctx context.Context, videoPath string, tracker *progress.Tracker) (string, error) {
	audioPath, err := e.AudioPath()
	if err != nil {
		return "", services.Wrap(services.ErrExtraction, "extract", "prepare", "scratch location", err)
	}
	if err := os.MkdirAll(filepath.Dir(audioPath), 0o755); err != nil {
		return "", services.Wrap(services.ErrExtraction, "extract", "prepare", "ensure scratch dir", err)
	}

	// Concurrent invocations share the artifact name; the lock serializes
	// the write itself. It is released when Extract returns, so the artifact
	// is only stable until another run starts extracting into the same
	// scratch dir.
	lock := flock.New(audioPath + ".lock")
	if err := lock.Lock(); err != nil {
		return "", services.Wrap(services.ErrExtraction, "extract", "lock", "acquire scratch lock", err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			e.logger.Warn("failed to release scratch lock", logging.Error(unlockErr))
		}
	}()

	estimated := estimate.Clamp(estimate.ExtractionTime(fileSize(videoPath)), estimateCeiling)

	done := make(chan struct{})
	finished := progress.Simulate(tracker, estimated, done)
	defer func() {
		close(done)
		select {
		case <-finished:
		case <-time.After(joinTimeout):
			e.logger.Warn("progress animator did not stop in time")
		}
		if tracker != nil {
			tracker.Complete()
		}
	}()

	primaryErr := e.primary(videoPath, audioPath)
	if primaryErr == nil {
		e.logger.Debug("audio extracted", logging.String("audio", audioPath))
		return audioPath, nil
	}
	e.logger.Warn("library extraction failed; retrying via subprocess", logging.Error(primaryErr))

	if _, err := os.Stat(videoPath); err != nil {
		e.discardArtifact(audioPath)
		return "", services.Wrap(services.ErrExtraction, "extract", "fallback", "input vanished before retry", err)
	}
	if !filepath.IsAbs(audioPath) {
		e.discardArtifact(audioPath)
		return "", services.Wrap(services.ErrExtraction, "extract", "fallback", fmt.Sprintf("audio path %q is not absolute", audioPath), nil)
	}

	if err := e.runner(ctx, e.ffmpegBinary, e.fallbackArgs(videoPath, audioPath)...); err != nil {
		e.discardArtifact(audioPath)
		return "", services.Wrap(services.ErrExtraction, "extract", "fallback",
			fmt.Sprintf("library path failed (%v) and subprocess retry failed", primaryErr), err)
	}
	e.logger.Debug("audio extracted via subprocess fallback", logging.String("audio", audioPath))
	return audioPath, nil
}

// discardArtifact removes whatever a failed extraction left at audioPath.
// Called while the scratch lock is still held so no run ever observes a
// half-written artifact from an earlier failure.
func (e *Extractor) discardArtifact(audioPath string) {
	if err := os.Remove(audioPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn("failed to remove partial audio artifact",
			logging.String("audio", audioPath),
			logging.Error(err),
		)
	}
}

// runLibrary is the primary extraction path through the ffmpeg-go bindings.
func (e *Extractor) runLibrary(videoPath, audioPath string) error {
	return ffmpeggo.Input(videoPath).
		Output(audioPath, ffmpeggo.KwArgs{
			"acodec":   "pcm_s16le",
			"ac":       e.channels,
			"ar":       e.sampleRate,
			"vn":       "",
			"f":        "wav",
			"loglevel": "error",
			"copyts":   "",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
}

func (e *Extractor) fallbackArgs(videoPath, audioPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-ac", strconv.Itoa(e.channels),
		"-ar", strconv.Itoa(e.sampleRate),
		"-c:a", "pcm_s16le",
		"-copyts",
		audioPath,
	}
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
