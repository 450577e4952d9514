package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/rodapgen/pkg/storage"
)

func testRun(path string, started time.Time) *Run {
	return &Run{
		Path:        path,
		Records:     1000,
		Seed:        42,
		Source:      "legacy",
		Compression: "none",
		BufferSize:  1 << 20,
		Size:        30999,
		Checksum:    "ab12",
		StartedAt:   started,
		Duration:    15 * time.Millisecond,
	}
}

func TestStore(t *testing.T) {
	backends := map[string]func(t *testing.T) string{
		"memory": func(t *testing.T) string { return storage.MemoryPath },
		"bbolt":  func(t *testing.T) string { return filepath.Join(t.TempDir(), "history.db") },
	}

	for name, path := range backends {
		t.Run(name, func(t *testing.T) {
			s, err := Open(path(t))
			require.NoError(t, err)
			defer s.Close()

			t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
			late := testRun("/tmp/b.txt", t0.Add(time.Hour))
			early := testRun("/tmp/a.txt", t0)
			require.NoError(t, s.Add(late))
			require.NoError(t, s.Add(early))

			_, err = uuid.Parse(late.ID)
			require.NoError(t, err)

			got, err := s.Get(early.ID)
			require.NoError(t, err)
			assert.Equal(t, *early, got)

			runs, err := s.List()
			require.NoError(t, err)
			require.Len(t, runs, 2)
			assert.Equal(t, "/tmp/a.txt", runs[0].Path)
			assert.Equal(t, "/tmp/b.txt", runs[1].Path)
		})
	}
}

func TestGetByPrefix(t *testing.T) {
	s, err := New(storage.NewMemoryBackend())
	require.NoError(t, err)

	a := testRun("a", time.Now())
	a.ID = "0199aaaa-0000"
	b := testRun("b", time.Now())
	b.ID = "0199aabb-0000"
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	got, err := s.Get("0199aaa")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Path)

	_, err = s.Get("0199aa")
	assert.ErrorIs(t, err, ErrAmbiguousRun)

	_, err = s.Get("ffff")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListEmpty(t *testing.T) {
	s, err := Open(storage.MemoryPath)
	require.NoError(t, err)

	runs, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
