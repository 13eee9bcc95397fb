package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"videodub/internal/captions"
	"videodub/internal/services"
)

// Result contains one transcription outcome.
type Result struct {
	// Segments is the chronological transcript.
	Segments []captions.Segment
	// Language is the language the recognizer detected or was told to use.
	Language string
	// Text is the concatenated plain-text transcript.
	Text string
}

// Service provides Whisper transcription.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model class.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe runs speech recognition over an extracted audio file. The task
// is TaskTranscribe or TaskTranslate; language declares the spoken language.
// The transcript JSON is written beside the audio file and parsed into the
// returned Result.
func (s *Service) Transcribe(ctx context.Context, audioPath, languageCode, task string) (Result, error) {
	var result Result

	audioPath = strings.TrimSpace(audioPath)
	if audioPath == "" {
		return result, services.Wrap(services.ErrValidation, "whisper", "transcribe", "audio path required", nil)
	}
	if task == "" {
		task = TaskTranscribe
	}

	outputDir := filepath.Dir(audioPath)
	args := s.buildArgs(audioPath, outputDir, languageCode, task)
	if err := s.run(ctx, s.launcher(), args...); err != nil {
		return result, services.Wrap(services.ErrTranscription, "whisper", "run", "speech recognition", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	// The transcript is consumed in this call; nothing else reads it, so
	// remove it whether or not it parses.
	defer func() { _ = os.Remove(jsonPath) }()
	payload, err := loadTranscript(jsonPath)
	if err != nil {
		return result, services.Wrap(services.ErrTranscription, "whisper", "parse", jsonPath, err)
	}

	result.Language = payload.Language
	if result.Language == "" {
		result.Language = languageCode
	}
	result.Text = strings.TrimSpace(payload.Text)
	result.Segments = make([]captions.Segment, 0, len(payload.Segments))
	for _, segment := range payload.Segments {
		result.Segments = append(result.Segments, captions.Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  strings.TrimSpace(segment.Text),
		})
	}
	return result, nil
}

func (s *Service) launcher() string {
	if s.cfg.Command != "" {
		return s.cfg.Command
	}
	return UVXCommand
}

// buildArgs constructs the uvx command arguments for the whisper CLI.
func (s *Service) buildArgs(audioPath, outputDir, languageCode, task string) []string {
	args := []string{
		"--from", PackageName,
		ToolName,
		audioPath,
		"--model", s.Model(),
		"--task", task,
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if languageCode != "" {
		args = append(args, "--language", languageCode)
	}
	device := s.cfg.Device
	if device == "" {
		device = DefaultDevice
	}
	args = append(args, "--device", device)
	if device == DefaultDevice {
		// fp16 is unsupported on CPU and only produces a warning storm.
		args = append(args, "--fp16", "False")
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// transcriptSegment mirrors one entry of the whisper JSON output.
type transcriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type transcriptPayload struct {
	Text     string              `json:"text"`
	Language string              `json:"language"`
	Segments []transcriptSegment `json:"segments"`
}

func loadTranscript(jsonPath string) (transcriptPayload, error) {
	var payload transcriptPayload
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return payload, err
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, fmt.Errorf("parse transcript json: %w", err)
	}
	return payload, nil
}
