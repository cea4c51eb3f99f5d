package quizgen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage("Savings Strategy", "  Pay yourself first.\n", 10, 0)

	if !strings.Contains(msg, "Lesson title: Savings Strategy") {
		t.Error("missing title")
	}
	if !strings.Contains(msg, "Number of questions: 10") {
		t.Error("missing count")
	}
	if !strings.HasSuffix(msg, "Lesson text:\nPay yourself first.") {
		t.Errorf("content not trimmed:\n%q", msg)
	}
}

func TestTruncateContent(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short text", 100, "short text"},
		{"short text", 0, "short text"},
		{"one two three four", 10, "one two ..."},
		{"abcdefghijkl", 5, "abcde ..."},
	}
	for _, tt := range tests {
		if got := truncateContent(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateContent(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
