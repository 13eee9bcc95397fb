package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"videodub/internal/captions"
	"videodub/internal/estimate"
	"videodub/internal/language"
	"videodub/internal/logging"
	"videodub/internal/progress"
	"videodub/internal/services"
	"videodub/internal/services/whisper"
	"videodub/internal/translate"
)

const (
	// trackerTotal is the percentage scale every stage tracker uses.
	trackerTotal = 100
	// animatorJoinTimeout bounds how long a stage waits for its synthetic
	// progress goroutine after the real work returns.
	animatorJoinTimeout = time.Second
	// defaultTranscriptionEstimate applies when the media duration cannot
	// be probed.
	defaultTranscriptionEstimate = 30 * time.Second
)

// Extractor produces the temporary audio artifact for a video.
type Extractor interface {
	Extract(ctx context.Context, videoPath string, tracker *progress.Tracker) (string, error)
}

// Transcriber converts extracted audio into timed caption segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageCode, task string) (whisper.Result, error)
}

// Translator rewrites segment text between languages, reporting per-segment
// progress through OnSegment.
type Translator interface {
	OnSegment(fn func(done, total int))
	Translate(ctx context.Context, segments []captions.Segment, srcLang, tgtLang string, allowEnglishIntermediate bool) (translate.Report, error)
}

// Request describes one subtitle generation run.
type Request struct {
	VideoPath              string
	SourceLang             string
	TargetLang             string
	UseEnglishIntermediate bool
}

// Options wires a Runner's collaborators.
type Options struct {
	Extractor   Extractor
	Transcriber Transcriber
	Translator  Translator
	// ModelClass feeds the transcription time estimate.
	ModelClass string
	// FFprobeBinary probes media duration for the same estimate. Empty
	// resolves "ffprobe" from PATH.
	FFprobeBinary string
	// ConsoleOut receives progress bars; nil disables them.
	ConsoleOut io.Writer
	Logger     *slog.Logger
}

// Runner executes subtitle generation runs.
type Runner struct {
	opts   Options
	logger *slog.Logger
}

// NewRunner creates a runner over the given collaborators.
func NewRunner(opts Options) *Runner {
	if opts.FFprobeBinary == "" {
		opts.FFprobeBinary = "ffprobe"
	}
	return &Runner{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "pipeline"),
	}
}

// OutputPath returns where the subtitle file for videoPath in targetLang is
// written: beside the video, named {stem}_{lang}.srt.
func OutputPath(videoPath, targetLang string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(videoPath), fmt.Sprintf("%s_%s.srt", stem, targetLang))
}

// Generate runs the full sequence for one video and returns the subtitle
// file path. The temporary audio artifact is removed on every outcome.
func (r *Runner) Generate(ctx context.Context, req Request) (string, error) {
	if r.opts.Extractor == nil || r.opts.Transcriber == nil || r.opts.Translator == nil {
		return "", services.Wrap(services.ErrConfiguration, "pipeline", "setup", "missing stage implementation", nil)
	}

	src, err := language.Normalize(req.SourceLang)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "pipeline", "preflight", "source language", err)
	}
	tgt, err := language.Normalize(req.TargetLang)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "pipeline", "preflight", "target language", err)
	}

	videoPath, err := filepath.Abs(req.VideoPath)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "pipeline", "preflight", "resolve video path", err)
	}
	info, err := os.Stat(videoPath)
	if err != nil {
		return "", services.Wrap(services.ErrInputNotFound, "pipeline", "preflight", videoPath, err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrInputNotFound, "pipeline", "preflight", fmt.Sprintf("%s is a directory", videoPath), nil)
	}

	logger := r.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	logger.Info("subtitle generation started",
		logging.String("video", videoPath),
		logging.String("source", src),
		logging.String("target", tgt),
	)

	var audioPath string
	defer func() {
		if audioPath == "" {
			return
		}
		if removeErr := os.Remove(audioPath); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			logger.Warn("failed to remove temporary audio",
				logging.String("audio", audioPath),
				logging.Error(removeErr),
			)
			return
		}
		logger.Debug("temporary audio removed", logging.String("audio", audioPath))
	}()

	extractTracker := r.newTracker("extracting audio", logger)
	audioPath, err = r.opts.Extractor.Extract(ctx, videoPath, extractTracker)
	if err != nil {
		return "", err
	}

	result, err := r.transcribe(ctx, logger, videoPath, audioPath, src)
	if err != nil {
		return "", err
	}
	logger.Info("transcription finished",
		logging.Int("segments", len(result.Segments)),
		logging.String("language", result.Language),
	)

	segments := result.Segments
	if src != tgt {
		if err := r.translateSegments(ctx, logger, segments, src, tgt, req.UseEnglishIntermediate); err != nil {
			return "", err
		}
	} else {
		logger.Info("source and target language match; keeping transcript text")
	}

	outputPath := OutputPath(videoPath, tgt)
	if err := captions.WriteFile(outputPath, segments); err != nil {
		return "", services.Wrap(services.ErrSerialization, "pipeline", "serialize", outputPath, err)
	}
	logger.Info("subtitles written",
		logging.String("output", outputPath),
		logging.Int("segments", len(segments)),
	)
	return outputPath, nil
}

// transcribe runs speech recognition with a simulated progress curve sized
// from the probed media duration.
func (r *Runner) transcribe(ctx context.Context, logger *slog.Logger, videoPath, audioPath, src string) (whisper.Result, error) {
	tracker := r.newTracker("transcribing audio", logger)
	estimated := defaultTranscriptionEstimate
	if duration, ok := estimate.ProbeDuration(ctx, r.opts.FFprobeBinary, videoPath); ok {
		estimated = estimate.TranscriptionTime(duration, r.opts.ModelClass)
	}

	stop := make(chan struct{})
	finished := progress.Simulate(tracker, estimated, stop)
	defer func() {
		close(stop)
		select {
		case <-finished:
		case <-time.After(animatorJoinTimeout):
			logger.Warn("progress animator did not stop in time")
		}
		tracker.Complete()
	}()

	return r.opts.Transcriber.Transcribe(ctx, audioPath, src, whisper.TaskTranscribe)
}

// translateSegments runs the fallback chain with per-segment progress.
func (r *Runner) translateSegments(ctx context.Context, logger *slog.Logger, segments []captions.Segment, src, tgt string, useEnglishIntermediate bool) error {
	tracker := r.newTracker("translating segments", logger)
	r.opts.Translator.OnSegment(func(done, total int) {
		if total <= 0 {
			return
		}
		tracker.Update(float64(done)/float64(total)*trackerTotal, "")
	})
	report, err := r.opts.Translator.Translate(ctx, segments, src, tgt, useEnglishIntermediate)
	r.opts.Translator.OnSegment(nil)
	tracker.Complete()
	if err != nil {
		return err
	}
	logger.Info("translation finished",
		logging.String("route", report.Route),
		logging.Int("translated", report.Translated),
		logging.Int("kept", report.Kept),
		logging.Int("blank", report.Blank),
	)
	return nil
}

func (r *Runner) newTracker(stage string, logger *slog.Logger) *progress.Tracker {
	tracker := progress.NewTracker(stage, trackerTotal)
	if r.opts.ConsoleOut != nil {
		tracker.Attach(progress.NewConsoleObserver(stage, trackerTotal, r.opts.ConsoleOut))
	}
	tracker.Attach(progress.NewLogObserver(logger, stage, trackerTotal, 0))
	return tracker
}
