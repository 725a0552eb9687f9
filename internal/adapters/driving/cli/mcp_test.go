package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)

	var names []string
	for _, c := range mcpCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresServices(t *testing.T) {
	SetServices(nil)
	t.Cleanup(resetCommand)

	_, err := execute("mcp", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating ports")
}
