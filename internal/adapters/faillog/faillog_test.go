package faillog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_CreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plato-dropbox.log")

	require.NoError(t, Append(path, "get token: network error"))
	require.NoError(t, Append(path, "list folder:\nprotocol error\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "get token: network error\nlist folder: protocol error\n", string(data))
}

func TestAppend_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open error log")
}
