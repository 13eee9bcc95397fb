package config

const (
	defaultScratchDir           = "~/.local/share/videodub/scratch"
	defaultLogDir               = "~/.local/share/videodub/logs"
	defaultSampleRate           = 16000
	defaultChannels             = 1
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultTranscriptionCommand = "uvx"
	defaultTranslationCommand   = "opus-mt"
	defaultSourceLanguage       = "ja"
	defaultTargetLanguage       = "zh"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
		},
		Audio: Audio{
			SampleRate:    defaultSampleRate,
			Channels:      defaultChannels,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Transcription: Transcription{
			Command: defaultTranscriptionCommand,
		},
		Translation: Translation{
			Command: defaultTranslationCommand,
		},
		Languages: Languages{
			DefaultSource: defaultSourceLanguage,
			DefaultTarget: defaultTargetLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
