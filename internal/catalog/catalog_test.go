package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"setpriority/internal/models"
	"setpriority/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeWindows(t *testing.T) SystemDirs {
	t.Helper()
	win := t.TempDir()
	sys := filepath.Join(win, "System32")
	wow := filepath.Join(win, "SysWOW64")
	require.NoError(t, os.MkdirAll(sys, 0755))
	require.NoError(t, os.MkdirAll(wow, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sys, "notepad.exe"), []byte("MZ"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(wow, "legacy32.exe"), []byte("MZ"), 0644))
	return SystemDirs{System: sys, Windows: win}
}

func TestListAll_SkipsReservedKey(t *testing.T) {
	hive := registry.NewMemory()
	require.NoError(t, hive.CreateKey("game.exe"))
	require.NoError(t, hive.CreateKey("{applicationverifierglobalsettings}"))
	require.NoError(t, hive.CreateKey("notepad.exe"))

	apps, err := New(hive, SystemDirs{}).ListAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"game.exe", "notepad.exe"}, apps)
}

func TestListAll_EmptyHive(t *testing.T) {
	apps, err := New(registry.NewMemory(), SystemDirs{}).ListAll()
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestClassify(t *testing.T) {
	cat := New(registry.NewMemory(), fakeWindows(t))

	assert.Equal(t, models.PlatformOwned, cat.Classify("notepad.exe"))
	assert.Equal(t, models.PlatformOwned, cat.Classify("legacy32.exe"))
	assert.Equal(t, models.UserInstalled, cat.Classify("game.exe"))
	assert.Equal(t, models.UserInstalled, cat.Classify(""))
	assert.Equal(t, models.UserInstalled, cat.Classify(`..\System32\notepad.exe`))
}

func TestClassify_NoDirs(t *testing.T) {
	cat := New(registry.NewMemory(), SystemDirs{})
	assert.True(t, cat.Dirs().Empty())
	assert.Equal(t, models.UserInstalled, cat.Classify("notepad.exe"))
}
