package sink

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/rodapgen/internal/compress"
	"pkg.jsn.cam/rodapgen/internal/sum"
	"pkg.jsn.cam/rodapgen/pkg/rodap"
)

const golden = "Bbneniunrfxs krmuiib;573117809\n" +
	"Hzpxmvdlxmaqgo toevs;201670884\n" +
	"Hqlb gwmhphhbcuigjp ;261801685\n" +
	"Kcnwvlzinfx ajrmixkd;723331240"

func TestCreateWritesRecords(t *testing.T) {
	t.Parallel()

	for _, mode := range []compress.Mode{compress.None, compress.Zstd} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "out.txt")

			s, err := Create(path, Options{BufferSize: 16, Compression: mode})
			require.NoError(t, err)
			require.NoError(t, rodap.Generate(context.Background(), s, rodap.NewLegacy(42), 4, nil))
			require.NoError(t, s.Close())

			assert.Equal(t, int64(len(golden)), s.Written())
			assert.Equal(t, sum.Compute([]byte(golden)), s.Sum())

			if mode == compress.None {
				b, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, golden, string(b))
			}

			rep, err := Inspect(path, mode)
			require.NoError(t, err)
			assert.Equal(t, int64(4), rep.Records)
			assert.Equal(t, int64(len(golden)), rep.Bytes)
			assert.Equal(t, s.Sum(), rep.Sum)
		})
	}
}

func TestBufferHoldsUntilFlush(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := New(&out, Options{BufferSize: 1024})
	_, err := s.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Zero(t, out.Len())

	require.NoError(t, s.Flush())
	assert.Equal(t, "abc", out.String())
	require.NoError(t, s.Close())
}

func TestDiscardChecksum(t *testing.T) {
	t.Parallel()

	s := Discard()
	require.NoError(t, rodap.Generate(context.Background(), s, rodap.NewLegacy(42), 4, nil))
	assert.Equal(t, sum.Compute([]byte(golden)), s.Sum())
	require.NoError(t, s.Close())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("device full") }

func TestWriteFailurePropagates(t *testing.T) {
	t.Parallel()

	s := New(brokenWriter{}, Options{BufferSize: 64})
	err := rodap.Generate(context.Background(), s, rodap.NewLegacy(1), 10, nil)
	assert.ErrorIs(t, err, rodap.ErrWrite)
	assert.Error(t, s.Close())
}

func TestCreateMissingDir(t *testing.T) {
	t.Parallel()
	_, err := Create(filepath.Join(t.TempDir(), "missing", "out.txt"), Options{})
	assert.Error(t, err)
}

func TestInspectReader(t *testing.T) {
	t.Parallel()

	rep, err := InspectReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, rep.Records)
	assert.Equal(t, sum.Compute(nil), rep.Sum)

	_, err = InspectReader(strings.NewReader(golden + "\n"))
	assert.ErrorIs(t, err, rodap.ErrMalformed)

	_, err = InspectReader(strings.NewReader(strings.Replace(golden, ";2", ",2", 1)))
	assert.ErrorIs(t, err, rodap.ErrMalformed)
	assert.Contains(t, err.Error(), "record 2")

	_, err = InspectReader(strings.NewReader(strings.Repeat("x", 70*1024)))
	assert.ErrorIs(t, err, rodap.ErrMalformed)
}
