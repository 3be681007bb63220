package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"setpriority/internal/catalog"
	"setpriority/internal/view"

	"github.com/kelseyhightower/envconfig"
)

// Backends
const (
	BackendWindows = "windows" // live registry
	BackendFile    = "file"    // YAML hive file
)

// EnvPrefix is the prefix of environment overrides, e.g. SETPRIORITY_BACKEND
const EnvPrefix = "setpriority"

// Config holds the application configuration
type Config struct {
	ShowSystemApps    bool   `json:"show_system_apps" envconfig:"SHOW_SYSTEM_APPS"`
	ShowUnmanagedApps bool   `json:"show_unmanaged_apps" envconfig:"SHOW_UNMANAGED_APPS"`
	Backend           string `json:"backend" envconfig:"BACKEND"`         // windows or file
	HivePath          string `json:"hive_path" envconfig:"HIVE_PATH"`     // File backend only
	SnapshotDir       string `json:"snapshot_dir" envconfig:"SNAPSHOT_DIR"`
	LogLevel          string `json:"log_level" envconfig:"LOG_LEVEL"`
	LogFile           string `json:"log_file" envconfig:"LOG_FILE"`

	// Overrides the detected system directories, mostly for the file backend
	SystemDir  string `json:"system_dir,omitempty" envconfig:"SYSTEM_DIR"`
	WindowsDir string `json:"windows_dir,omitempty" envconfig:"WINDOWS_DIR"`

	FirstRun bool   `json:"-" ignored:"true"` // Is this the first run?
	path     string // Where Save writes
}

// configFileName is the name of the config file
const configFileName = "setpriority.json"

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Backend:     defaultBackend(),
		HivePath:    filepath.Join(ConfigDir(), "hive.yaml"),
		SnapshotDir: filepath.Join(ConfigDir(), "snapshots"),
		LogLevel:    "info",
		LogFile:     filepath.Join(ConfigDir(), "setpriority.log"),
		FirstRun:    true,
	}
}

// ConfigDir returns the directory containing setpriority files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "setpriority")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load loads the configuration from the default location
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from path. A missing file yields the
// defaults with FirstRun set.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Fields missing from the file keep their defaults
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.FirstRun = false
	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overrides fields from SETPRIORITY_* environment variables
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return err
	}
	c.normalize()
	return nil
}

// Path returns the file Save writes to
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save saves the configuration to the file it was loaded from
func (c *Config) Save() error {
	configPath := c.Path()

	// Create config directory
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ViewOptions returns the list filter
func (c *Config) ViewOptions() view.Options {
	return view.Options{
		ShowPlatformOwned: c.ShowSystemApps,
		ShowUnmanaged:     c.ShowUnmanagedApps,
	}
}

// SetViewOptions stores the list filter
func (c *Config) SetViewOptions(opts view.Options) {
	c.ShowSystemApps = opts.ShowPlatformOwned
	c.ShowUnmanagedApps = opts.ShowUnmanaged
}

// SaveViewOptions records the list filter and persists only that. The file
// is reloaded first so flag and environment overrides held by c never reach it.
func (c *Config) SaveViewOptions(opts view.Options) error {
	c.SetViewOptions(opts)

	stored, err := LoadFrom(c.Path())
	if err != nil {
		return err
	}
	stored.SetViewOptions(opts)
	return stored.Save()
}

// SystemDirs returns the classification directories, falling back to the
// ones reported by the OS for anything not overridden
func (c *Config) SystemDirs() catalog.SystemDirs {
	dirs := catalog.DefaultSystemDirs()
	if c.SystemDir != "" {
		dirs.System = c.SystemDir
	}
	if c.WindowsDir != "" {
		dirs.Windows = c.WindowsDir
	}
	return dirs
}

// UsesFileHive reports whether the YAML hive should be used
func (c *Config) UsesFileHive() bool {
	return c.Backend == BackendFile
}

func (c *Config) normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend != BackendWindows && c.Backend != BackendFile {
		c.Backend = defaultBackend()
	}
	if c.SnapshotDir == "" {
		c.SnapshotDir = filepath.Join(ConfigDir(), "snapshots")
	}
	if c.HivePath == "" {
		c.HivePath = filepath.Join(ConfigDir(), "hive.yaml")
	}
}
