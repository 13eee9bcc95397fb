package config

import (
	"errors"
	"fmt"

	"videodub/internal/estimate"
	"videodub/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLanguages(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate < 8000 {
		return errors.New("audio.sample_rate must be at least 8000 Hz")
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return errors.New("audio.channels must be 1 or 2")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if c.Transcription.Model != "" {
		if _, known := estimate.ModelFactors()[c.Transcription.Model]; !known {
			return fmt.Errorf("transcription.model %q is not a known model class", c.Transcription.Model)
		}
	}
	switch c.Transcription.Device {
	case "", "cpu", "cuda":
	default:
		return fmt.Errorf("transcription.device %q must be cpu or cuda (or empty for auto)", c.Transcription.Device)
	}
	return nil
}

func (c *Config) validateLanguages() error {
	if _, err := language.Normalize(c.Languages.DefaultSource); err != nil {
		return fmt.Errorf("languages.default_source: %w", err)
	}
	if _, err := language.Normalize(c.Languages.DefaultTarget); err != nil {
		return fmt.Errorf("languages.default_target: %w", err)
	}
	return nil
}
