package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, `a\b\c`, Join("a", "", `\b\`, "c"))
	assert.Equal(t, "", Join())
	assert.Equal(t, []string{"a", "b"}, Split(`\a\b\`))
	assert.Nil(t, Split(""))
}

func TestMemory_CreateAndEnumerate(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateKey(`notepad.exe\PerfOptions`))
	require.NoError(t, m.CreateKey(`game.exe`))
	require.NoError(t, m.CreateKey(`NOTEPAD.EXE\PerfOptions`))

	names, err := m.SubKeyNames("")
	require.NoError(t, err)
	assert.Equal(t, []string{"notepad.exe", "game.exe"}, names)

	_, err = m.SubKeyNames("missing.exe")
	assert.True(t, IsNotExist(err))
}

func TestMemory_Values(t *testing.T) {
	m := NewMemory()

	err := m.SetDWORD(`app.exe\PerfOptions`, "CpuPriorityClass", 3)
	assert.True(t, IsNotExist(err), "setting a value on a missing key should fail")

	require.NoError(t, m.CreateKey(`app.exe\PerfOptions`))
	require.NoError(t, m.SetDWORD(`app.exe\PerfOptions`, "CpuPriorityClass", 3))

	v, err := m.GetDWORD(`APP.EXE\perfoptions`, "cpupriorityclass")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), v)

	require.NoError(t, m.DeleteValue(`app.exe\PerfOptions`, "CpuPriorityClass"))
	_, err = m.GetDWORD(`app.exe\PerfOptions`, "CpuPriorityClass")
	assert.True(t, IsNotExist(err))

	assert.True(t, IsNotExist(m.DeleteValue(`app.exe\PerfOptions`, "CpuPriorityClass")))
}

func TestMemory_DeleteKeyAndTree(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.CreateKey(`app.exe\PerfOptions`))

	assert.ErrorIs(t, m.DeleteKey("app.exe"), ErrHasSubKeys)

	require.NoError(t, m.DeleteTree(`app.exe\PerfOptions`))
	require.NoError(t, m.DeleteKey("app.exe"))

	names, err := m.SubKeyNames("")
	require.NoError(t, err)
	assert.Empty(t, names)

	assert.True(t, IsNotExist(m.DeleteTree("app.exe")))
	assert.Error(t, m.DeleteTree(""))
}

func TestFile_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hive.yaml")

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.CreateKey(`game.exe\PerfOptions`))
	require.NoError(t, f.SetDWORD(`game.exe\PerfOptions`, "CpuPriorityClass", 3))
	require.NoError(t, f.SetDWORD(`game.exe\PerfOptions`, "SetPriorityManaged", 1))
	require.NoError(t, f.CreateKey("tool.exe"))

	reopened, err := OpenFile(path)
	require.NoError(t, err)

	names, err := reopened.SubKeyNames("")
	require.NoError(t, err)
	assert.Equal(t, []string{"game.exe", "tool.exe"}, names)

	v, err := reopened.GetDWORD(`game.exe\PerfOptions`, "CpuPriorityClass")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), v)

	require.NoError(t, reopened.DeleteTree("game.exe"))
	again, err := OpenFile(path)
	require.NoError(t, err)
	names, err = again.SubKeyNames("")
	require.NoError(t, err)
	assert.Equal(t, []string{"tool.exe"}, names)
}

func TestFile_MissingFileIsEmpty(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	names, err := f.SubKeyNames("")
	require.NoError(t, err)
	assert.Empty(t, names)
}
