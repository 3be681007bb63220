//go:build windows

package registry

import (
	"errors"
	"fmt"

	winreg "golang.org/x/sys/windows/registry"
)

// Windows is a Hive over a subtree of the local machine registry.
type Windows struct {
	root string
}

// OpenWindows returns a hive rooted at HKEY_LOCAL_MACHINE\<root>.
func OpenWindows(root string) (Hive, error) {
	k, err := winreg.OpenKey(winreg.LOCAL_MACHINE, root, winreg.QUERY_VALUE|winreg.WOW64_64KEY)
	if err != nil {
		return nil, fmt.Errorf("open HKLM\\%s: %w", root, translate(err))
	}
	k.Close()
	return &Windows{root: root}, nil
}

func (w *Windows) full(path string) string {
	return Join(w.root, path)
}

func (w *Windows) open(path string, access uint32) (winreg.Key, error) {
	k, err := winreg.OpenKey(winreg.LOCAL_MACHINE, w.full(path), access|winreg.WOW64_64KEY)
	if err != nil {
		return 0, translate(err)
	}
	return k, nil
}

// SubKeyNames implements Hive.
func (w *Windows) SubKeyNames(path string) ([]string, error) {
	k, err := w.open(path, winreg.ENUMERATE_SUB_KEYS|winreg.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, translate(err)
	}
	return names, nil
}

// GetDWORD implements Hive.
func (w *Windows) GetDWORD(path, name string) (uint32, error) {
	k, err := w.open(path, winreg.QUERY_VALUE)
	if err != nil {
		return 0, err
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue(name)
	if err != nil {
		return 0, translate(err)
	}
	return uint32(v), nil
}

// SetDWORD implements Hive.
func (w *Windows) SetDWORD(path, name string, value uint32) error {
	k, err := w.open(path, winreg.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	return translate(k.SetDWordValue(name, value))
}

// CreateKey implements Hive.
func (w *Windows) CreateKey(path string) error {
	k, _, err := winreg.CreateKey(winreg.LOCAL_MACHINE, w.full(path), winreg.WRITE|winreg.WOW64_64KEY)
	if err != nil {
		return translate(err)
	}
	return k.Close()
}

// DeleteValue implements Hive.
func (w *Windows) DeleteValue(path, name string) error {
	k, err := w.open(path, winreg.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	return translate(k.DeleteValue(name))
}

// DeleteKey implements Hive.
func (w *Windows) DeleteKey(path string) error {
	if len(Split(path)) == 0 {
		return fmt.Errorf("registry: refusing to delete the root key")
	}
	return translate(winreg.DeleteKey(winreg.LOCAL_MACHINE, w.full(path)))
}

// DeleteTree implements Hive. Children are removed depth-first, then path.
func (w *Windows) DeleteTree(path string) error {
	names, err := w.SubKeyNames(path)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := w.DeleteTree(Join(path, name)); err != nil {
			return err
		}
	}
	return w.DeleteKey(path)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, winreg.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrNotExist, err)
	}
	return err
}
