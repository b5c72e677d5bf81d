package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	levels := []string{"trace", "debug", "info", "warn", "error"}

	for ci, configured := range levels {
		for mi, messageLevel := range levels {
			name := configured + " logger, " + messageLevel + " message"
			shouldAppear := mi >= ci

			t.Run(name, func(t *testing.T) {
				buf := &bytes.Buffer{}
				logger := NewConsoleLogger(buf, configured)
				message := messageLevel + " msg"

				switch messageLevel {
				case "trace":
					logger.LogTrace(message)
				case "debug":
					logger.LogDebug(message)
				case "info":
					logger.LogInfo(message)
				case "warn":
					logger.LogWarn(message)
				case "error":
					logger.LogError(message)
				}

				contains := strings.Contains(buf.String(), message)
				if shouldAppear && !contains {
					t.Errorf("Expected message %q to appear in output, got %q", message, buf.String())
				}
				if !shouldAppear && contains {
					t.Errorf("Expected message %q NOT to appear in output, got %q", message, buf.String())
				}
			})
		}
	}
}

// TestNormalizeLogLevel verifies case folding and the info fallback
func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"trace", "trace"},
		{"DEBUG", "debug"},
		{"  Warn ", "warn"},
		{"error", "error"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.expected {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
