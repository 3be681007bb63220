//go:build !windows

package registry

import "errors"

// ErrUnsupported is returned when the native registry is not available.
var ErrUnsupported = errors.New("registry: the Windows registry is not available on this platform")

// OpenWindows is only implemented on Windows. Use OpenFile elsewhere.
func OpenWindows(root string) (Hive, error) {
	return nil, ErrUnsupported
}
