package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// readEntries parses the JSON log lines written to path.
func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse log line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := New(path, LevelInfo, RotationConfig{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("graph executed", "tasks", 5)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0]["msg"] != "graph executed" {
		t.Errorf("msg = %v, want %q", entries[0]["msg"], "graph executed")
	}
	if entries[0]["tasks"] != float64(5) {
		t.Errorf("tasks = %v, want 5", entries[0]["tasks"])
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := New(path, LevelWarn, RotationConfig{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("kept too")
	logger.Close()

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries at WARN level, got %d", len(entries))
	}
}

func TestPersistentAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := New(path, LevelDebug, RotationConfig{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	child := logger.WithTask("compile").WithWave(2)
	child.Debug("task dispatched")
	logger.Info("no attrs here")
	logger.Close()

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0]["task"] != "compile" {
		t.Errorf("task = %v, want %q", entries[0]["task"], "compile")
	}
	if entries[0]["wave"] != float64(2) {
		t.Errorf("wave = %v, want 2", entries[0]["wave"])
	}
	if _, ok := entries[1]["task"]; ok {
		t.Error("parent logger should not carry child attributes")
	}
}

func TestWithIgnoresNonStringKeys(t *testing.T) {
	logger := Nop()
	child := logger.With(42, "value", "key", "ok")
	if len(child.attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(child.attrs))
	}
	if child.attrs[0].Key != "key" {
		t.Errorf("attr key = %q, want %q", child.attrs[0].Key, "key")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := New(path, LevelInfo, RotationConfig{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	// Must not panic or write anywhere.
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
}

func TestValidLevels(t *testing.T) {
	levels := ValidLevels()
	if len(levels) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(levels))
	}
	joined := strings.Join(levels, ",")
	for _, want := range []string{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if !strings.Contains(joined, want) {
			t.Errorf("ValidLevels() missing %q", want)
		}
	}
}
