package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.NotNil(t, tuiCmd.RunE)
}

func TestTUIPorts(t *testing.T) {
	setupTestServices(t)

	ports := tuiPorts()
	require.NotNil(t, ports)
	assert.NotNil(t, ports.Document)
	assert.NotNil(t, ports.Annotation)
	assert.NotNil(t, ports.Renderer)
	assert.NotNil(t, ports.Preference)
	assert.NotNil(t, ports.Settings)
	assert.Nil(t, ports.Monitor, "no monitor was configured")
	assert.NoError(t, ports.Validate())
}

func TestTUICmd_RequiresServices(t *testing.T) {
	SetServices(nil)
	t.Cleanup(resetCommand)

	_, err := execute("tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
