package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"setpriority/internal/models"
	"setpriority/internal/priority"

	"gopkg.in/yaml.v3"
)

// Version is the snapshot format version written by this build.
const Version = 1

// Record is one application in a snapshot.
type Record struct {
	Name     string `yaml:"name"`
	Priority string `yaml:"priority"`
	Managed  bool   `yaml:"managed"`
}

// Snapshot is a point-in-time copy of priority configuration.
type Snapshot struct {
	Version int       `yaml:"version"`
	Taken   time.Time `yaml:"taken"`
	Host    string    `yaml:"host,omitempty"`
	Reason  string    `yaml:"reason,omitempty"`
	Entries []Record  `yaml:"entries"`
}

// RecordOf converts an entry. A code with no name is kept as its number.
func RecordOf(e models.Entry) Record {
	slug := e.Priority.Slug()
	if !e.Priority.Valid() && !e.Priority.IsDefault() {
		slug = strconv.FormatUint(uint64(e.Priority.Code()), 10)
	}
	return Record{
		Name:     e.Name,
		Priority: slug,
		Managed:  e.Managed,
	}
}

// Class parses the record's priority.
func (r Record) Class() (priority.Class, error) {
	return priority.ParseStored(r.Priority)
}

// Capture builds a snapshot from entries.
func Capture(entries []models.Entry, reason string) *Snapshot {
	host, _ := os.Hostname()
	s := &Snapshot{
		Version: Version,
		Taken:   time.Now().UTC().Truncate(time.Second),
		Host:    host,
		Reason:  reason,
		Entries: make([]Record, 0, len(entries)),
	}
	for _, e := range entries {
		s.Entries = append(s.Entries, RecordOf(e))
	}
	return s
}

// Read loads a snapshot file.
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	if s.Version > Version {
		return nil, fmt.Errorf("snapshot %s has version %d, newer than supported %d", path, s.Version, Version)
	}
	return &s, nil
}

// Marshal encodes the snapshot as YAML.
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Write saves the snapshot to path, creating parent directories.
func (s *Snapshot) Write(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Find returns the record for name, ignoring case.
func (s *Snapshot) Find(name string) (Record, bool) {
	for _, r := range s.Entries {
		if models.SameName(r.Name, name) {
			return r, true
		}
	}
	return Record{}, false
}

// Lines renders one canonical line per record, sorted by name, for diffing.
func (s *Snapshot) Lines() []string {
	lines := make([]string, 0, len(s.Entries))
	for _, r := range s.Entries {
		state := "unmanaged"
		if r.Managed {
			state = "managed"
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s", strings.ToLower(r.Name), r.Priority, state))
	}
	sort.Strings(lines)
	return lines
}
