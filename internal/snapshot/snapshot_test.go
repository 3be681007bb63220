package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"setpriority/internal/models"
	"setpriority/internal/priority"
	"setpriority/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []models.Entry {
	return []models.Entry{
		{Name: "game.exe", Managed: true, Priority: priority.High},
		{Name: "Encoder.exe", Managed: true, Priority: priority.Default},
		{Name: "legacy.exe", Managed: false, Priority: priority.BelowNormal},
	}
}

func TestCapture_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snap.yaml")
	s := Capture(sampleEntries(), "manual export")
	require.NoError(t, s.Write(path))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, Version, got.Version)
	assert.Equal(t, "manual export", got.Reason)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, Record{Name: "game.exe", Priority: "high", Managed: true}, got.Entries[0])
	assert.Equal(t, "below-normal", got.Entries[2].Priority)

	r, ok := got.Find("ENCODER.EXE")
	require.True(t, ok)
	assert.Equal(t, "default", r.Priority)
}

func TestRead_RejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.yaml")
	s := &Snapshot{Version: Version + 1}
	require.NoError(t, s.Write(path))

	_, err := Read(path)
	assert.Error(t, err)
}

func TestApply_RestoresState(t *testing.T) {
	hive := registry.NewMemory()
	store := priority.NewStore(hive, nil)
	require.NoError(t, store.SetPriority("encoder.exe", priority.Realtime))
	require.NoError(t, store.SetManagedOnly("legacy.exe"))

	res, err := Apply(store, Capture(sampleEntries(), ""))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Applied)
	assert.Empty(t, res.Skipped)

	class, managed := store.Get("game.exe")
	assert.Equal(t, priority.High, class)
	assert.True(t, managed)

	class, managed = store.Get("encoder.exe")
	assert.Equal(t, priority.Default, class)
	assert.True(t, managed)

	class, managed = store.Get("legacy.exe")
	assert.Equal(t, priority.BelowNormal, class)
	assert.False(t, managed)
}

func TestApply_SkipsUnreadableRecords(t *testing.T) {
	store := priority.NewStore(registry.NewMemory(), nil)
	s := &Snapshot{Version: Version, Entries: []Record{
		{Name: "odd.exe", Priority: "turbo", Managed: true},
		{Name: "ok.exe", Priority: "idle", Managed: true},
	}}

	res, err := Apply(store, s)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, []string{"odd.exe"}, res.Skipped)
}

func TestApply_UnmanagedDefaultOnMissingKey(t *testing.T) {
	hive := registry.NewMemory()
	store := priority.NewStore(hive, nil)
	s := &Snapshot{Version: Version, Entries: []Record{{Name: "ghost.exe", Priority: "default"}}}

	_, err := Apply(store, s)
	require.NoError(t, err)

	names, err := hive.SubKeyNames("")
	require.NoError(t, err)
	assert.Empty(t, names, "restoring an empty record should not create keys")
}

func TestApply_KeepsUnknownCode(t *testing.T) {
	hive := registry.NewMemory()
	store := priority.NewStore(hive, nil)
	s := Capture([]models.Entry{{Name: "odd.exe", Managed: false, Priority: priority.Class(7)}}, "")
	assert.Equal(t, "7", s.Entries[0].Priority)

	res, err := Apply(store, s)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	assert.Empty(t, res.Skipped)

	class, managed := store.Get("odd.exe")
	assert.Equal(t, priority.Class(7), class)
	assert.False(t, managed)
}

func TestDiff(t *testing.T) {
	current := Capture(sampleEntries(), "")
	incoming := Capture([]models.Entry{
		{Name: "game.exe", Managed: true, Priority: priority.AboveNormal},
		{Name: "encoder.exe", Managed: true, Priority: priority.Default},
		{Name: "legacy.exe", Managed: false, Priority: priority.BelowNormal},
		{Name: "new.exe", Managed: true, Priority: priority.Idle},
	}, "")

	d := Diff(current, incoming)
	assert.False(t, d.Identical())
	assert.Equal(t, 2, d.Added)
	assert.Equal(t, 1, d.Removed)
	assert.Equal(t, "+2 -1", d.Summary())
	assert.Contains(t, d.Unified(), "- game.exe  high  managed")
	assert.Contains(t, d.Unified(), "+ game.exe  above-normal  managed")
	assert.Contains(t, d.Unified(), "+ new.exe  idle  managed")
	assert.Contains(t, d.Unified(), "  encoder.exe  default  managed")
}

func TestDiff_Identical(t *testing.T) {
	a := Capture(sampleEntries(), "")
	b := Capture(sampleEntries(), "")
	d := Diff(a, b)
	assert.True(t, d.Identical())
	assert.Equal(t, "No changes", d.Summary())
}

func TestArchive_SaveListHistory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	a := NewArchive(dir, nil)
	tick := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return tick }

	path, err := a.Save(Capture(sampleEntries(), ""), "pre-delete game.exe")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pre-delete-game.exe-20261019-120000.yaml"), path)

	files, err := a.List()
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)

	commits, err := a.History(5)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "pre-delete game.exe: 3 entries", commits[0].Message)
}

func TestArchive_ListMissingDir(t *testing.T) {
	files, err := NewArchive(filepath.Join(t.TempDir(), "none"), nil).List()
	require.NoError(t, err)
	assert.Empty(t, files)
}
