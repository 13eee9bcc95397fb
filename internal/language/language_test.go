package language

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{"lowercase passthrough", "ja", "ja", false},
		{"uppercase", "JA", "ja", false},
		{"region stripped", "en-US", "en", false},
		{"three letter", "jpn", "ja", false},
		{"whitespace", "  zh ", "zh", false},
		{"empty", "", "", true},
		{"garbage", "not a language!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ja", "Japanese"},
		{"zh", "Chinese"},
		{"en", "English"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := DisplayName(tt.code); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestDisplayNameFallsBackToInput(t *testing.T) {
	if got := DisplayName("???"); got != "???" {
		t.Errorf("DisplayName(invalid) = %q, want input echoed", got)
	}
}

func TestIsEnglish(t *testing.T) {
	if !IsEnglish("en") || !IsEnglish("en-GB") {
		t.Error("IsEnglish should accept en variants")
	}
	if IsEnglish("ja") || IsEnglish("") {
		t.Error("IsEnglish accepted a non-English code")
	}
}
