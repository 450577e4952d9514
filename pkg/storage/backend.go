// Package storage is a small bucketed key-value layer used to keep the history
// of generation runs. Values are raw bytes; JSONStore adds encoding.
package storage

import "errors"

// ErrBucketNotFound is returned by operations on a bucket that was never created.
var ErrBucketNotFound = errors.New("bucket not found")

// MemoryPath selects the in-memory backend in Open.
const MemoryPath = ":memory:"

// Backend defines a key-value store with bucket support.
type Backend interface {
	// CreateBucket is idempotent.
	CreateBucket(name []byte) error

	Put(bucket, key, value []byte) error
	// Get returns nil without error for a missing key.
	Get(bucket, key []byte) ([]byte, error)

	// ForEach visits every pair in ascending key order.
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}

// Open returns a bbolt backend for path, or a memory backend for MemoryPath.
func Open(path string) (Backend, error) {
	if path == MemoryPath {
		return NewMemoryBackend(), nil
	}
	return NewBboltBackend(path)
}
