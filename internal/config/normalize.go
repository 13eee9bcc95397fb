package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAudio()
	c.normalizeTranscription()
	c.normalizeTranslation()
	c.normalizeLanguages()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAudio() {
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.Channels <= 0 {
		c.Audio.Channels = defaultChannels
	}
	c.Audio.FFmpegBinary = strings.TrimSpace(c.Audio.FFmpegBinary)
	if c.Audio.FFmpegBinary == "" {
		c.Audio.FFmpegBinary = defaultFFmpegBinary
	}
	c.Audio.FFprobeBinary = strings.TrimSpace(c.Audio.FFprobeBinary)
	if c.Audio.FFprobeBinary == "" {
		c.Audio.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Command = strings.TrimSpace(c.Transcription.Command)
	if c.Transcription.Command == "" {
		c.Transcription.Command = defaultTranscriptionCommand
	}
	c.Transcription.Model = strings.ToLower(strings.TrimSpace(c.Transcription.Model))
	c.Transcription.Device = strings.ToLower(strings.TrimSpace(c.Transcription.Device))
}

func (c *Config) normalizeTranslation() {
	c.Translation.Command = strings.TrimSpace(c.Translation.Command)
	if c.Translation.Command == "" {
		c.Translation.Command = defaultTranslationCommand
	}
}

func (c *Config) normalizeLanguages() {
	c.Languages.DefaultSource = strings.ToLower(strings.TrimSpace(c.Languages.DefaultSource))
	if c.Languages.DefaultSource == "" {
		c.Languages.DefaultSource = defaultSourceLanguage
	}
	c.Languages.DefaultTarget = strings.ToLower(strings.TrimSpace(c.Languages.DefaultTarget))
	if c.Languages.DefaultTarget == "" {
		c.Languages.DefaultTarget = defaultTargetLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
