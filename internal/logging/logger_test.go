package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "setpriority.log")

	logger, err := New(DefaultConfig(logFile))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("priority set")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "priority set") {
		t.Errorf("log file missing message, got %q", string(data))
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{filepath.Join(t.TempDir(), "x.log")}})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewOrNop_FallsBack(t *testing.T) {
	logger := NewOrNop(Config{Level: "loud"})
	if logger == nil {
		t.Fatal("NewOrNop should never return nil")
	}
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) should return a logger")
	}
}
