package priority

import (
	"errors"
	"strings"
	"testing"

	"setpriority/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingHive rejects writes of one value name.
type failingHive struct {
	*registry.Memory
	failValue string
}

func (h *failingHive) SetDWORD(path, name string, value uint32) error {
	if strings.EqualFold(name, h.failValue) {
		return errors.New("access denied")
	}
	return h.Memory.SetDWORD(path, name, value)
}

func newTestStore() (*Store, *registry.Memory) {
	hive := registry.NewMemory()
	return NewStore(hive, nil), hive
}

func TestStore_GetAbsentIsDefault(t *testing.T) {
	store, _ := newTestStore()

	class, managed := store.Get("nothing.exe")
	assert.Equal(t, Default, class)
	assert.False(t, managed)
}

func TestStore_RoundTripEveryClass(t *testing.T) {
	for _, c := range Choices {
		if c.IsDefault() {
			continue
		}
		t.Run(c.String(), func(t *testing.T) {
			store, _ := newTestStore()
			require.NoError(t, store.SetPriority("app.exe", c))

			got, managed := store.Get("app.exe")
			assert.Equal(t, c, got)
			assert.True(t, managed)
		})
	}
}

func TestStore_WritesLoaderCodes(t *testing.T) {
	expected := map[Class]uint32{
		Idle:        1,
		BelowNormal: 5,
		Normal:      2,
		AboveNormal: 6,
		High:        3,
		Realtime:    4,
	}
	for c, code := range expected {
		store, hive := newTestStore()
		require.NoError(t, store.SetPriority("app.exe", c))

		v, err := hive.GetDWORD(`app.exe\PerfOptions`, "CpuPriorityClass")
		require.NoError(t, err)
		assert.Equal(t, code, v, c.String())

		m, err := hive.GetDWORD(`app.exe\PerfOptions`, "SetPriorityManaged")
		require.NoError(t, err)
		assert.Equal(t, uint32(1), m)
	}
}

func TestStore_SetPriorityRejectsDefault(t *testing.T) {
	store, hive := newTestStore()

	err := store.SetPriority("app.exe", Default)
	assert.ErrorIs(t, err, ErrInvalidClass)

	names, err := hive.SubKeyNames("")
	require.NoError(t, err)
	assert.Empty(t, names, "nothing should be written for an invalid class")
}

func TestStore_SetManagedOnly(t *testing.T) {
	store, _ := newTestStore()
	require.NoError(t, store.SetManagedOnly("app.exe"))

	class, managed := store.Get("app.exe")
	assert.Equal(t, Default, class)
	assert.True(t, managed)
}

func TestStore_ClearPriorityKeepsManaged(t *testing.T) {
	store, _ := newTestStore()
	require.NoError(t, store.SetPriority("app.exe", AboveNormal))
	require.NoError(t, store.ClearPriorityValue("app.exe"))

	class, managed := store.Get("app.exe")
	assert.Equal(t, Default, class)
	assert.True(t, managed)

	require.NoError(t, store.ClearPriorityValue("app.exe"), "clearing twice is not an error")
}

func TestStore_UnmanageKeepsPriority(t *testing.T) {
	store, _ := newTestStore()
	require.NoError(t, store.SetPriority("app.exe", High))
	require.NoError(t, store.ClearManagedFlag("app.exe"))

	class, managed := store.Get("app.exe")
	assert.Equal(t, High, class)
	assert.False(t, managed)
}

func TestStore_RemoveAllIsTotal(t *testing.T) {
	store, hive := newTestStore()
	require.NoError(t, store.SetPriority("app.exe", Idle))
	require.NoError(t, hive.CreateKey("other.exe"))

	require.NoError(t, store.RemoveAll("app.exe"))

	class, managed := store.Get("app.exe")
	assert.Equal(t, Default, class)
	assert.False(t, managed)

	names, err := hive.SubKeyNames("")
	require.NoError(t, err)
	assert.Equal(t, []string{"other.exe"}, names)
}

func TestStore_RemoveAllWithoutPerfOptions(t *testing.T) {
	store, hive := newTestStore()
	require.NoError(t, hive.CreateKey("bare.exe"))

	require.NoError(t, store.RemoveAll("bare.exe"))

	names, err := hive.SubKeyNames("")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_PartialWriteIsNotRolledBack(t *testing.T) {
	hive := &failingHive{Memory: registry.NewMemory(), failValue: ManagedValue}
	store := NewStore(hive, nil)

	err := store.SetPriority("app.exe", High)
	require.Error(t, err)

	class, managed := store.Get("app.exe")
	assert.Equal(t, High, class, "the priority write should survive the failed flag write")
	assert.False(t, managed)
}

func TestStore_UnknownStoredCode(t *testing.T) {
	store, hive := newTestStore()
	require.NoError(t, hive.CreateKey(`odd.exe\PerfOptions`))
	require.NoError(t, hive.SetDWORD(`odd.exe\PerfOptions`, PriorityValue, 9))

	class, _ := store.Get("odd.exe")
	assert.False(t, class.Valid())
	assert.Equal(t, "(Unknown)", class.String())
}

func TestStore_RestoreCode(t *testing.T) {
	store, hive := newTestStore()
	require.NoError(t, store.RestoreCode("odd.exe", Class(7)))

	v, err := hive.GetDWORD(`odd.exe\PerfOptions`, PriorityValue)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
	assert.True(t, store.IsManaged("odd.exe"))

	assert.ErrorIs(t, store.RestoreCode("odd.exe", Default), ErrInvalidClass)
}
