// Package deps reports the availability of the external tools a subtitle
// run shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"videodub/internal/config"
)

// Requirement defines an external tool videodub relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the tool list for the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "ffmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Audio extraction",
		},
		{
			Name:        "ffprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Media inspection and duration estimates",
		},
		{
			Name:        "transcription launcher",
			Command:     cfg.Transcription.Command,
			Description: "Runs the whisper CLI",
		},
		{
			Name:        "translation helper",
			Command:     cfg.Translation.Command,
			Description: "Serves opus-mt translation models",
			Optional:    true,
		},
		{
			Name:        "nvidia-smi",
			Command:     "nvidia-smi",
			Description: "GPU detection for model selection",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required tools that are unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
