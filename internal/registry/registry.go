package registry

import (
	"errors"
	"strings"
)

// Separator joins key path segments, matching the Windows registry.
const Separator = `\`

// ErrNotExist is returned when a key or value is absent.
var ErrNotExist = errors.New("registry: key or value does not exist")

// ErrHasSubKeys is returned by DeleteKey when the key still has children.
var ErrHasSubKeys = errors.New("registry: key has subkeys")

// Hive is a hierarchical key-value store rooted at a fixed path.
// Paths are relative to that root; the empty path is the root itself.
// Key and value names compare case-insensitively.
type Hive interface {
	// SubKeyNames returns the direct children of path in enumeration order.
	SubKeyNames(path string) ([]string, error)
	// GetDWORD reads a 32-bit value.
	GetDWORD(path, name string) (uint32, error)
	// SetDWORD writes a 32-bit value into an existing key.
	SetDWORD(path, name string, value uint32) error
	// CreateKey creates path and any missing parents. Existing keys are left alone.
	CreateKey(path string) error
	// DeleteValue removes a single value.
	DeleteValue(path, name string) error
	// DeleteKey removes a key that has no subkeys.
	DeleteKey(path string) error
	// DeleteTree removes path and everything below it.
	DeleteTree(path string) error
}

// Join builds a key path from segments, skipping empty ones.
func Join(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, Separator)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, Separator)
}

// Split breaks a key path into its segments.
func Split(path string) []string {
	path = strings.Trim(path, Separator)
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// IsNotExist reports whether err means a missing key or value.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
