package ui

import (
	"strings"
	"testing"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"pre-delete-game.exe-20261019-120000.yaml", "YAML"},
		{"hive.yml", "YAML"},
		{"setpriority.json", "JSON"},
		{"export.reg", "Registry"},
		{"setpriority.log", "Log"},
		{"notes", "Text"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := GetFileType(tt.filename)
			if result != tt.expected {
				t.Errorf("GetFileType(%s) = %s, want %s", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestHighlighter_HighlightLine(t *testing.T) {
	h := NewHighlighter()

	tests := []struct {
		line     string
		filename string
	}{
		{"- name: game.exe", "snap.yaml"},
		{"  priority: high", "snap.yaml"},
		{`{"backend": "file"}`, "setpriority.json"},
	}

	for _, tt := range tests {
		result := h.HighlightLine(tt.line, tt.filename)
		if result == "" {
			t.Errorf("HighlightLine(%q, %s) returned empty", tt.line, tt.filename)
		}
		if !strings.Contains(stripANSI(result), strings.TrimSpace(tt.line)) {
			t.Errorf("HighlightLine should keep the text, got %q", result)
		}
	}
}

func TestHighlighter_UnknownFileUnchanged(t *testing.T) {
	h := NewHighlighter()
	line := "2026-10-19T12:00:00Z info priority set"
	if got := h.HighlightLine(line, "setpriority.log"); got != line {
		t.Errorf("log lines should not be highlighted, got %q", got)
	}
}

func TestHighlighter_HighlightLines(t *testing.T) {
	h := NewHighlighter()
	lines := []string{"version: 1", "entries:", "  - name: game.exe"}

	result := h.HighlightLines(lines, "snap.yaml")
	if len(result) != len(lines) {
		t.Fatalf("expected %d lines, got %d", len(lines), len(result))
	}
}

func TestHighlighter_HighlightDiff(t *testing.T) {
	h := NewHighlighter()
	out := h.HighlightDiff("  a.exe  high  managed\n- b.exe  idle  managed\n+ b.exe  normal  managed\n")

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(stripANSI(lines[1]), "- b.exe") {
		t.Errorf("removed line lost its text: %q", lines[1])
	}
}

// stripANSI removes terminal escape sequences
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
