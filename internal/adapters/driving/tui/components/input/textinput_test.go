package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchInput(t *testing.T) {
	si := NewSearchInput(nil)

	require.NotNil(t, si)
	assert.True(t, si.Focused())
	assert.Empty(t, si.Value())
	assert.Equal(t, 50, si.Width())
}

func TestSearchInput_UpdateReportsChange(t *testing.T) {
	si := NewSearchInput(nil)

	_, _, changed := si.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	assert.True(t, changed)
	assert.Equal(t, "w", si.Value())

	_, _, changed = si.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed)

	_, _, changed = si.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, changed, "cursor sits before the only rune")
}

func TestSearchInput_BlurIgnoresKeys(t *testing.T) {
	si := NewSearchInput(nil)
	si.Blur()

	_, _, changed := si.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.False(t, changed)
	assert.False(t, si.Focused())
}

func TestSearchInput_SetWidth(t *testing.T) {
	si := NewSearchInput(nil)

	si.SetWidth(100)
	assert.Equal(t, 100, si.Width())
	assert.Equal(t, 90, si.textinput.Width)

	si.SetWidth(10)
	assert.Equal(t, 20, si.textinput.Width)
}

func TestSearchInput_SetValueReset(t *testing.T) {
	si := NewSearchInput(nil)

	si.SetValue("wyoming")
	assert.Equal(t, "wyoming", si.Value())
	assert.Contains(t, si.View(), "Search:")

	si.Reset()
	assert.Empty(t, si.Value())
}
