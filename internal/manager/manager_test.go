package manager

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"setpriority/internal/models"
	"setpriority/internal/priority"
	"setpriority/internal/registry"
	"setpriority/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type platformSet map[string]bool

func (p platformSet) Classify(app string) models.Origin {
	if p[strings.ToLower(app)] {
		return models.PlatformOwned
	}
	return models.UserInstalled
}

type failingArchive struct{}

func (failingArchive) Save(*snapshot.Snapshot, string) (string, error) {
	return "", errors.New("disk full")
}

func newManager(t *testing.T, archive Archiver) (*Manager, *priority.Store, *registry.Memory) {
	t.Helper()
	hive := registry.NewMemory()
	store := priority.NewStore(hive, nil)
	return New(store, platformSet{"notepad.exe": true}, archive, nil), store, hive
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"  game.exe ":                    "game.exe",
		`C:\Games\Big Game\game.exe`:     "game.exe",
		"/mnt/c/tools/encoder.exe":       "encoder.exe",
		`"C:\Program Files\app\app.exe"`: "app.exe",
		"":                               "",
		`C:\dir\`:                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestValidate(t *testing.T) {
	visible := []models.Entry{{Name: "Game.exe"}}

	_, err := Validate(FormInput{Name: "   "}, visible)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = Validate(FormInput{Name: "GAME.EXE"}, visible)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = Validate(FormInput{Name: "x.exe", Priority: priority.Class(9)}, visible)
	assert.Error(t, err)

	in, err := Validate(FormInput{Name: `D:\bin\other.exe`, Priority: priority.High}, visible)
	require.NoError(t, err)
	assert.Equal(t, FormInput{Name: "other.exe", Priority: priority.High}, in)
}

func TestAdd(t *testing.T) {
	m, store, _ := newManager(t, nil)

	name, err := m.Add(FormInput{Name: "game.exe", Priority: priority.AboveNormal}, nil)
	require.NoError(t, err)
	assert.Equal(t, "game.exe", name)
	class, managed := store.Get("game.exe")
	assert.Equal(t, priority.AboveNormal, class)
	assert.True(t, managed)

	_, err = m.Add(FormInput{Name: "tool.exe"}, nil)
	require.NoError(t, err)
	class, managed = store.Get("tool.exe")
	assert.Equal(t, priority.Default, class)
	assert.True(t, managed)
}

func TestAdd_DuplicateDoesNotTouchStore(t *testing.T) {
	m, _, hive := newManager(t, nil)
	visible := []models.Entry{{Name: "game.exe", Managed: true, Priority: priority.High}}

	_, err := m.Add(FormInput{Name: "Game.EXE", Priority: priority.Idle}, visible)
	require.ErrorIs(t, err, ErrDuplicate)

	names, err := hive.SubKeyNames("")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestAdd_HiddenEntryIsNotDuplicate(t *testing.T) {
	m, store, _ := newManager(t, nil)
	require.NoError(t, store.SetPriority("hidden.exe", priority.Idle))
	require.NoError(t, store.ClearManagedFlag("hidden.exe"))

	_, err := m.Add(FormInput{Name: "hidden.exe", Priority: priority.High}, nil)
	require.NoError(t, err)
	class, managed := store.Get("hidden.exe")
	assert.Equal(t, priority.High, class)
	assert.True(t, managed)
}

func TestEdit(t *testing.T) {
	m, store, _ := newManager(t, nil)
	require.NoError(t, store.SetPriority("game.exe", priority.High))

	require.NoError(t, m.Edit("game.exe", priority.Realtime))
	class, _ := store.Get("game.exe")
	assert.Equal(t, priority.Realtime, class)

	require.NoError(t, m.Edit("game.exe", priority.Default))
	class, managed := store.Get("game.exe")
	assert.Equal(t, priority.Default, class)
	assert.True(t, managed, "Default keeps the managed flag")
}

func TestUnmanage(t *testing.T) {
	m, store, _ := newManager(t, nil)
	require.NoError(t, store.SetPriority("game.exe", priority.High))

	require.NoError(t, m.Unmanage("game.exe"))
	class, managed := store.Get("game.exe")
	assert.Equal(t, priority.High, class)
	assert.False(t, managed)
}

func TestRemove_PlatformOwned(t *testing.T) {
	m, store, _ := newManager(t, nil)
	require.NoError(t, store.SetPriority("notepad.exe", priority.High))

	_, err := m.Remove("Notepad.exe")
	require.ErrorIs(t, err, ErrPlatformOwned)
	class, managed := store.Get("notepad.exe")
	assert.Equal(t, priority.High, class)
	assert.True(t, managed)
}

func TestRemove_SnapshotsFirst(t *testing.T) {
	archive := snapshot.NewArchive(filepath.Join(t.TempDir(), "snapshots"), nil)
	m, store, hive := newManager(t, archive)
	require.NoError(t, store.SetPriority("game.exe", priority.BelowNormal))

	path, err := m.Remove("game.exe")
	require.NoError(t, err)
	require.NotEmpty(t, path)

	names, err := hive.SubKeyNames("")
	require.NoError(t, err)
	assert.Empty(t, names)

	saved, err := snapshot.Read(path)
	require.NoError(t, err)
	rec, ok := saved.Find("game.exe")
	require.True(t, ok)
	assert.Equal(t, "below-normal", rec.Priority)
	assert.True(t, rec.Managed)
}

func TestRemove_SnapshotFailureKeepsEntry(t *testing.T) {
	m, store, _ := newManager(t, failingArchive{})
	require.NoError(t, store.SetPriority("game.exe", priority.High))

	_, err := m.Remove("game.exe")
	require.Error(t, err)
	class, _ := store.Get("game.exe")
	assert.Equal(t, priority.High, class)
}
