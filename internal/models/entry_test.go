package models

import (
	"testing"

	"setpriority/internal/priority"
)

func TestEntry_Labels(t *testing.T) {
	e := Entry{Name: "game.exe", Priority: priority.AboveNormal}
	if got := e.PriorityLabel(); got != "Above Normal" {
		t.Errorf("PriorityLabel() = %q", got)
	}
	if e.IsPlatformOwned() {
		t.Error("user entry reported as platform owned")
	}
	if got := (Entry{Priority: priority.Class(9)}).PriorityLabel(); got != "(Unknown)" {
		t.Errorf("unknown code label = %q", got)
	}
	if PlatformOwned.String() != "system" || UserInstalled.String() != "user" {
		t.Error("unexpected origin labels")
	}
}

func TestIndexOf(t *testing.T) {
	entries := []Entry{{Name: "a.exe"}, {Name: "Game.EXE"}}

	tests := []struct {
		name string
		want int
	}{
		{"game.exe", 1},
		{"A.EXE", 0},
		{"other.exe", -1},
	}

	for _, tt := range tests {
		if got := IndexOf(entries, tt.name); got != tt.want {
			t.Errorf("IndexOf(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
