//go:build windows

package catalog

import "golang.org/x/sys/windows"

// DefaultSystemDirs asks Windows for the system and Windows directories.
func DefaultSystemDirs() SystemDirs {
	var dirs SystemDirs
	if sys, err := windows.GetSystemDirectory(); err == nil {
		dirs.System = sys
	}
	if win, err := windows.GetWindowsDirectory(); err == nil {
		dirs.Windows = win
	}
	return dirs
}
