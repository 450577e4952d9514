package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendTestSuite runs the same checks against any Backend implementation
func backendTestSuite(t *testing.T, newBackend func(t *testing.T) Backend) {
	bucket := []byte("runs")

	t.Run("CreateBucket", func(t *testing.T) {
		backend := newBackend(t)
		require.NoError(t, backend.CreateBucket(bucket))
		// Idempotent
		require.NoError(t, backend.CreateBucket(bucket))
	})

	t.Run("MissingBucket", func(t *testing.T) {
		backend := newBackend(t)

		assert.ErrorIs(t, backend.Put(bucket, []byte("k"), []byte("v")), ErrBucketNotFound)
		_, err := backend.Get(bucket, []byte("k"))
		assert.ErrorIs(t, err, ErrBucketNotFound)
		err = backend.ForEach(bucket, func(k, v []byte) error { return nil })
		assert.ErrorIs(t, err, ErrBucketNotFound)
	})

	t.Run("PutAndGet", func(t *testing.T) {
		backend := newBackend(t)
		require.NoError(t, backend.CreateBucket(bucket))

		value := []byte("value1")
		require.NoError(t, backend.Put(bucket, []byte("key1"), value))

		// stored values are copies
		value[0] = 'X'
		got, err := backend.Get(bucket, []byte("key1"))
		require.NoError(t, err)
		assert.Equal(t, []byte("value1"), got)

		got, err = backend.Get(bucket, []byte("nonexistent"))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ForEachOrdered", func(t *testing.T) {
		backend := newBackend(t)
		require.NoError(t, backend.CreateBucket(bucket))
		for _, k := range []string{"c", "a", "b"} {
			require.NoError(t, backend.Put(bucket, []byte(k), []byte("v"+k)))
		}

		var keys, values []string
		err := backend.ForEach(bucket, func(k, v []byte) error {
			keys = append(keys, string(k))
			values = append(values, string(v))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, keys)
		assert.Equal(t, []string{"va", "vb", "vc"}, values)
	})

	t.Run("ForEachStops", func(t *testing.T) {
		backend := newBackend(t)
		require.NoError(t, backend.CreateBucket(bucket))
		require.NoError(t, backend.Put(bucket, []byte("a"), []byte("1")))
		require.NoError(t, backend.Put(bucket, []byte("b"), []byte("2")))

		stop := errors.New("stop")
		visited := 0
		err := backend.ForEach(bucket, func(k, v []byte) error {
			visited++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, visited)
	})
}
