package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"setpriority/internal/history"
	"setpriority/internal/logging"

	"go.uber.org/zap"
)

// Archive stores snapshots in a directory tracked by git.
type Archive struct {
	dir string
	log *zap.Logger
	now func() time.Time
}

// NewArchive creates an archive rooted at dir.
func NewArchive(dir string, log *zap.Logger) *Archive {
	return &Archive{dir: dir, log: logging.OrNop(log).Named("snapshot"), now: time.Now}
}

// Dir returns the archive directory.
func (a *Archive) Dir() string {
	return a.dir
}

// Save writes s as <label>-<timestamp>.yaml and commits it. A failed commit
// is logged; the file is kept.
func (a *Archive) Save(s *Snapshot, label string) (string, error) {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.yaml", sanitizeLabel(label), a.now().Format("20060102-150405"))
	path := filepath.Join(a.dir, name)
	if err := s.Write(path); err != nil {
		return "", err
	}

	repo, err := history.Init(a.dir)
	if err == nil {
		err = repo.Commit(commitMessage(s, label), name)
	}
	if err != nil {
		a.log.Warn("snapshot not committed", zap.String("file", path), zap.Error(err))
	}

	a.log.Info("snapshot saved", zap.String("file", path), zap.Int("entries", len(s.Entries)))
	return path, nil
}

// List returns snapshot files, newest first.
func (a *Archive) List() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	type file struct {
		path    string
		modTime time.Time
	}
	var found []file
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, file{filepath.Join(a.dir, e.Name()), info.ModTime()})
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].modTime.After(found[j].modTime)
	})

	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.path)
	}
	return files, nil
}

// History returns recent commits of the archive.
func (a *Archive) History(count int) ([]history.CommitInfo, error) {
	repo := history.Open(a.dir)
	if !repo.IsRepo() {
		return []history.CommitInfo{}, nil
	}
	return repo.Log(count)
}

func commitMessage(s *Snapshot, label string) string {
	if s.Reason != "" {
		return s.Reason
	}
	return fmt.Sprintf("%s: %d entries", label, len(s.Entries))
}

func sanitizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return "snapshot"
	}

	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
