package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"setpriority/internal/models"
	"setpriority/internal/registry"
)

// Root is the image execution options path under HKEY_LOCAL_MACHINE.
const Root = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\Image File Execution Options`

// ReservedKey is the application verifier placeholder, never an application.
const ReservedKey = "{ApplicationVerifierGlobalSettings}"

// SystemDirs locates the directories used to recognise platform binaries.
type SystemDirs struct {
	System  string // e.g. C:\Windows\System32
	Windows string // e.g. C:\Windows; SysWOW64 is looked up beneath it
}

// Empty reports whether no directory is configured.
func (d SystemDirs) Empty() bool {
	return d.System == "" && d.Windows == ""
}

// Catalog enumerates and classifies application keys.
type Catalog struct {
	hive registry.Hive
	dirs SystemDirs
}

// New creates a catalog over hive.
func New(hive registry.Hive, dirs SystemDirs) *Catalog {
	return &Catalog{hive: hive, dirs: dirs}
}

// Dirs returns the directories used by Classify.
func (c *Catalog) Dirs() SystemDirs {
	return c.dirs
}

// ListAll returns every application key in enumeration order, without the
// reserved placeholder. A missing root yields an empty list.
func (c *Catalog) ListAll() ([]string, error) {
	names, err := c.hive.SubKeyNames("")
	if err != nil {
		if registry.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	apps := make([]string, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(name, ReservedKey) {
			continue
		}
		apps = append(apps, name)
	}
	return apps, nil
}

// Classify reports PlatformOwned when an executable with this exact name
// exists directly in the system directory or in SysWOW64.
//
// This is a presence check only. A user binary that happens to share a
// system binary's name is classified as platform-owned.
func (c *Catalog) Classify(app string) models.Origin {
	if app == "" || strings.ContainsAny(app, `\/`) {
		return models.UserInstalled
	}

	if c.dirs.System != "" && exists(filepath.Join(c.dirs.System, app)) {
		return models.PlatformOwned
	}
	if c.dirs.Windows != "" && exists(filepath.Join(c.dirs.Windows, "SysWOW64", app)) {
		return models.PlatformOwned
	}
	return models.UserInstalled
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
