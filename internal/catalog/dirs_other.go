//go:build !windows

package catalog

// DefaultSystemDirs has nothing to offer off Windows; configure SystemDirs
// explicitly to classify against a mounted Windows tree.
func DefaultSystemDirs() SystemDirs {
	return SystemDirs{}
}
