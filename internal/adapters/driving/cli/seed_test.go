package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute("seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample documents and annotations added.")

	docs, err := env.documents.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.NotEmpty(t, docs)

	out, err = execute("seed")
	require.NoError(t, err)
	assert.Contains(t, out, "already")
}
