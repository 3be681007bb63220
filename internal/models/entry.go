package models

import (
	"strings"

	"setpriority/internal/priority"
)

// Origin says where an executable name comes from
type Origin int

const (
	UserInstalled Origin = iota // Not found in the system directories
	PlatformOwned               // Found in System32 or SysWOW64
)

// String returns a short label
func (o Origin) String() string {
	if o == PlatformOwned {
		return "system"
	}
	return "user"
}

// Entry is an application registered under the image execution options root
type Entry struct {
	Name     string         // Executable file name, no path
	Managed  bool           // SetPriorityManaged = 1
	Priority priority.Class // Default when no CpuPriorityClass is stored
	Origin   Origin         // Derived, never stored
}

// PriorityLabel returns the text shown in the priority column
func (e Entry) PriorityLabel() string {
	return e.Priority.String()
}

// IsPlatformOwned reports whether the entry must not be deleted
func (e Entry) IsPlatformOwned() bool {
	return e.Origin == PlatformOwned
}

// Is reports whether the entry has the given name, ignoring case
func (e Entry) Is(name string) bool {
	return SameName(e.Name, name)
}

// SameName compares executable names the way the registry does
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// IndexOf returns the position of name in entries, or -1
func IndexOf(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Is(name) {
			return i
		}
	}
	return -1
}
