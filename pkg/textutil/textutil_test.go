package textutil

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		want      string
	}{
		{name: "short text unchanged", text: "hello", maxLength: 100, want: "hello"},
		{name: "exact length unchanged", text: "hello", maxLength: 5, want: "hello"},
		{name: "long text truncated with suffix", text: "hello world", maxLength: 8, want: "hello..."},
		{name: "tiny budget drops suffix", text: "hello", maxLength: 2, want: "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.text, tt.maxLength, "...")
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWordPreview(t *testing.T) {
	text := "one two three four five"

	preview, truncated := WordPreview(text, 3)
	if preview != "one two three" {
		t.Errorf("WordPreview() = %q, want %q", preview, "one two three")
	}
	if !truncated {
		t.Error("expected truncated=true")
	}

	preview, truncated = WordPreview(text, 10)
	if preview != text {
		t.Errorf("WordPreview() = %q, want full text", preview)
	}
	if truncated {
		t.Error("expected truncated=false")
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(strings.Repeat("a", 400)); got != 100 {
		t.Errorf("EstimateTokens() = %d, want 100", got)
	}
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("EstimateTokens() = %d, want 0", got)
	}
}
