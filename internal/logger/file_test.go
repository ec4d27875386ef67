package logger

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestFileLoggerCreatesRunLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

	fl, err := newFileLogger(dir, "info", now)
	if err != nil {
		t.Fatalf("newFileLogger: %v", err)
	}

	want := filepath.Join(dir, "run-20240309-140507.log")
	if fl.Path() != want {
		t.Errorf("Path() = %q, want %q", fl.Path(), want)
	}

	fl.LogDebug("hidden")
	fl.LogInfo("Path to analyze: /x")
	fl.LogWarn("Couldn't read the size of /x/y, setting to 0: gone")
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "=== dirtally run log ===\n") {
		t.Errorf("missing header: %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Error("debug message written at info level")
	}
	line := regexp.MustCompile(`(?m)^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] Path to analyze: /x$`)
	if !line.MatchString(content) {
		t.Errorf("info line not found in %q", content)
	}
	if !strings.Contains(content, "[WARN] Couldn't read the size of /x/y") {
		t.Errorf("warn line not found in %q", content)
	}
}

func TestFileLoggerLatestLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()

	first, err := newFileLogger(dir, "info", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("first logger: %v", err)
	}
	first.Close()
	second, err := newFileLogger(dir, "info", time.Date(2024, 1, 1, 0, 0, 1, 0, time.Local))
	if err != nil {
		t.Fatalf("second logger: %v", err)
	}
	defer second.Close()

	target, err := os.Readlink(filepath.Join(dir, LatestLink))
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != "run-20240101-000001.log" {
		t.Errorf("latest.log -> %q, want newest run", target)
	}
}

func TestFileLoggerWritesAfterCloseAreDropped(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	fl.LogError("late")
	if err := fl.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestFileLoggerBadDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLogger(filepath.Join(blocker, "logs")); err == nil {
		t.Error("expected error when log dir is under a regular file")
	}
}
