package captions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Segment is a time-bounded unit of transcribed text. Start and End are
// offsets in seconds with Start <= End. Text is rewritten in place by the
// translation chain; no other writer touches it.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// FormatTimestamp renders seconds as an SRT timestamp "HH:MM:SS,mmm".
//
// Milliseconds are truncated, not rounded: a value at .9995s formats as
// ,999 rather than carrying into the next second. Matches the historical
// output of this tool; do not change without revisiting existing files.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60
	millis := int((seconds - float64(whole)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp back to seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// Render serializes segments as SRT content: 1-based contiguous indices,
// "start --> end" timing lines, text, and a blank line after every entry
// including the last.
func Render(segments []Segment) string {
	var sb strings.Builder
	for i, segment := range segments {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte('\n')
		sb.WriteString(FormatTimestamp(segment.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(segment.End))
		sb.WriteByte('\n')
		sb.WriteString(strings.TrimSpace(segment.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// WriteFile renders segments and writes them to path as UTF-8.
func WriteFile(path string, segments []Segment) error {
	if err := os.WriteFile(path, []byte(Render(segments)), 0o644); err != nil {
		return fmt.Errorf("write captions: %w", err)
	}
	return nil
}
