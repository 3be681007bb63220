package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClass_Labels(t *testing.T) {
	tests := []struct {
		class  Class
		name   string
		choice string
	}{
		{Default, "Default", "0 - Default (System Managed)"},
		{Idle, "Idle", "1 - Idle"},
		{BelowNormal, "Below Normal", "5 - Below Normal"},
		{Normal, "Normal", "2 - Normal"},
		{AboveNormal, "Above Normal", "6 - Above Normal"},
		{High, "High", "3 - High"},
		{Realtime, "Realtime", "4 - Realtime (Not Recommend)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.class.String())
		assert.Equal(t, tt.choice, tt.class.ChoiceLabel())
	}
	assert.Equal(t, "(Unknown)", Class(42).String())
}

func TestClass_Valid(t *testing.T) {
	assert.False(t, Default.Valid())
	assert.False(t, Class(7).Valid())
	for _, c := range Choices[1:] {
		assert.True(t, c.Valid(), c.String())
	}
}

func TestChoiceIndex(t *testing.T) {
	assert.Equal(t, 0, ChoiceIndex(Default))
	assert.Equal(t, 2, ChoiceIndex(BelowNormal))
	assert.Equal(t, 6, ChoiceIndex(Realtime))
	assert.Equal(t, 0, ChoiceIndex(Class(99)))
}

func TestParse(t *testing.T) {
	cases := map[string]Class{
		"high":         High,
		"Above Normal": AboveNormal,
		"below-normal": BelowNormal,
		"belownormal":  BelowNormal,
		"default":      Default,
		"4":            Realtime,
		"0":            Default,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("turbo")
	assert.Error(t, err)
	_, err = Parse("8")
	assert.Error(t, err)
}

func TestParseStored(t *testing.T) {
	c, err := ParseStored("8")
	require.NoError(t, err)
	assert.Equal(t, Class(8), c)

	c, err = ParseStored("above-normal")
	require.NoError(t, err)
	assert.Equal(t, AboveNormal, c)

	_, err = ParseStored("turbo")
	assert.Error(t, err)
}
