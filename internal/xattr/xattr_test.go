//go:build !windows

package xattr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetRemoveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mkv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, ok, err := Get(path)
	require.NoError(t, err)
	require.False(t, ok, "freshly created file should have no attribute")

	payload := []byte(`{"version":2,"path":"","metadata":null}`)
	if err := Set(path, payload); err != nil {
		t.Skipf("extended attributes unsupported on this filesystem: %v", err)
	}

	got, ok, err := Get(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, payload, got)

	require.NoError(t, Remove(path))
	_, ok, err = Get(path)
	require.NoError(t, err)
	require.False(t, ok)
}
