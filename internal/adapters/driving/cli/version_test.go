package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() {
		version = original
		resetCommand()
	})
}

func TestVersionCmd(t *testing.T) {
	withVersion(t, "1.4.0")

	out, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "redliner version 1.4.0")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_Short(t *testing.T) {
	withVersion(t, "1.4.0")

	out, err := execute("version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.4.0\n", out)
}

func TestVersionCmd_DevByDefault(t *testing.T) {
	withVersion(t, "dev")

	out, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "redliner version dev")
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	withVersion(t, "dev")

	_, err := execute("version", "extra")
	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	withVersion(t, "dev")

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
