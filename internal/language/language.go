package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// English is the pivot language for intermediate translation.
const English = "en"

// Normalize validates a language code and canonicalizes it to its lowercase
// base form ("JA" -> "ja", "en-US" -> "en"). Translation model identifiers
// are keyed by these base codes.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", fmt.Errorf("language code is empty")
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("language code %q: %w", trimmed, err)
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", fmt.Errorf("language code %q: no base language", trimmed)
	}
	return base.String(), nil
}

// DisplayName returns the English name for a language code, falling back to
// the code itself when no name is known.
func DisplayName(code string) string {
	normalized, err := Normalize(code)
	if err != nil {
		return code
	}
	tag := language.MustParse(normalized)
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return normalized
}

// IsEnglish reports whether the code resolves to English.
func IsEnglish(code string) bool {
	normalized, err := Normalize(code)
	if err != nil {
		return false
	}
	return normalized == English
}
