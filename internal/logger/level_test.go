package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevelFiltering(t *testing.T) {
	order := []string{"trace", "debug", "info", "warn", "error"}

	for ci, configured := range order {
		for mi, message := range order {
			name := configured + " vs " + message
			t.Run(name, func(t *testing.T) {
				buf := &bytes.Buffer{}
				l := NewConsoleLogger(buf, configured)
				emit(l, message, "msg")

				appeared := strings.Contains(buf.String(), "msg")
				want := mi >= ci
				if appeared != want {
					t.Errorf("level %s, message %s: appeared=%v, want %v", configured, message, appeared, want)
				}
			})
		}
	}
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "info"},
		{"DEBUG", "debug"},
		{"  warn ", "warn"},
		{"verbose", "info"},
		{"Error", "error"},
	}
	for _, tt := range tests {
		if got := normalizeLogLevel(tt.in); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, l := range Levels {
		if !IsValidLevel(l) {
			t.Errorf("IsValidLevel(%q) = false", l)
		}
	}
	if IsValidLevel("loud") {
		t.Error("IsValidLevel(loud) = true")
	}
}

func emit(l Leveled, level, message string) {
	switch level {
	case "trace":
		l.LogTrace(message)
	case "debug":
		l.LogDebug(message)
	case "info":
		l.LogInfo(message)
	case "warn":
		l.LogWarn(message)
	case "error":
		l.LogError(message)
	}
}
