package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Focus.Keys(), "tab")
	assert.Contains(t, km.Sort.Keys(), "s")
	assert.Contains(t, km.Select.Keys(), "enter")
}

func TestKeyMap_Helps(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Len(t, km.ResultsHelp(), 4)
	full := km.FullHelp()
	require.Len(t, full, 3)
	for _, row := range full {
		assert.NotEmpty(t, row)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  string
		want bool
	}{
		{"up", true},
		{"k", true},
		{"down", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.key, km.Up))
		})
	}
}
