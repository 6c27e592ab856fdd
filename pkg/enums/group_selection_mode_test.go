package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSelectionModeToggled(t *testing.T) {
	assert.Equal(t, GroupSelectionModeMulti, GroupSelectionModeSingle.Toggled())
	assert.Equal(t, GroupSelectionModeSingle, GroupSelectionModeMulti.Toggled())
}

func TestParseGroupSelectionMode(t *testing.T) {
	mode, err := ParseGroupSelectionMode("single")
	require.NoError(t, err)
	assert.Equal(t, GroupSelectionModeSingle, mode)

	mode, err = ParseGroupSelectionMode("multi")
	require.NoError(t, err)
	assert.Equal(t, GroupSelectionModeMulti, mode)

	_, err = ParseGroupSelectionMode("everything")
	require.Error(t, err)
}
