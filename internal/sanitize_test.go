package internal

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fix Login Bug", "Fix Login Bug"},
		{`a\b/c*d?e:f"g<h>i|j`, "abcdefghij"},
		{"CamelCase Kept", "CamelCase Kept"},
		{"???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFallbackFilename(t *testing.T) {
	rec := &Record{Source: SourceClaude, ID: "1234"}
	if got := FallbackFilename(rec, "html"); got != "claude-1234.html" {
		t.Errorf("FallbackFilename() = %q", got)
	}

	rec = &Record{Source: SourceGemini, ID: "a:b"}
	if got := FallbackFilename(rec, "md"); got != "gemini-ab.md" {
		t.Errorf("FallbackFilename() = %q", got)
	}
}
