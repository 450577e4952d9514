package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBboltBackend(t *testing.T) {
	backendTestSuite(t, func(t *testing.T) Backend {
		backend, err := NewBboltBackend(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { backend.Close() })
		return backend
	})
}

func TestBboltPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	backend, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, backend.CreateBucket([]byte("runs")))
	require.NoError(t, backend.Put([]byte("runs"), []byte("k"), []byte("v")))
	require.NoError(t, backend.Close())

	backend, err = Open(path)
	require.NoError(t, err)
	defer backend.Close()
	got, err := backend.Get([]byte("runs"), []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestOpenMemory(t *testing.T) {
	backend, err := Open(MemoryPath)
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, backend)
}
