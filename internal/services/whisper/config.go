package whisper

const (
	// UVXCommand launches Python tools without a managed environment.
	UVXCommand = "uvx"
	// PackageName is the PyPI distribution providing the whisper CLI.
	PackageName = "openai-whisper"
	// ToolName is the executable entry point inside the package.
	ToolName = "whisper"

	// DefaultModel is used when neither config nor auto-selection supplies one.
	DefaultModel = "small"
	// DefaultDevice keeps transcription on the CPU unless CUDA is requested.
	DefaultDevice = "cpu"
)

// Tasks accepted by the recognizer.
const (
	TaskTranscribe = "transcribe"
	TaskTranslate  = "translate"
)

// Config holds the transcription service settings.
type Config struct {
	// Command overrides the uvx launcher (mainly for tests and packaging).
	Command string
	// Model is the Whisper model class, e.g. "small" or "large-v3".
	Model string
	// Device is the compute device, "cpu" or "cuda".
	Device string
}
