// Package sum computes BLAKE3 checksums of generated record streams.
package sum

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
)

// Size is the byte-size of a checksum
const Size = 32

// Sum stores a checksum
type Sum [Size]byte

// FromHex decodes a hex-encoded checksum.
func FromHex(s string) (Sum, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Sum{}, err
	}
	if len(b) != Size {
		return Sum{}, fmt.Errorf("length must be %d not %d", Size, len(b))
	}
	var sum Sum
	copy(sum[:], b)
	return sum, nil
}

// Compute returns the checksum of a byte slice.
func Compute(data []byte) Sum {
	h := New()
	h.Write(data)
	return h.Sum()
}

// AsHex returns the hex-encoded representation of s.
func (s Sum) AsHex() string {
	return hex.EncodeToString(s[:])
}

func (s Sum) String() string {
	return s.AsHex()
}

// Hash computes a checksum incrementally. Implements io.Writer.
type Hash struct {
	h hash.Hash
}

// New returns a new Hash.
func New() *Hash {
	return &Hash{h: blake3.New()}
}

// Write writes a byte slice to the hash function.
func (h *Hash) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// Sum returns the current checksum of a Hash.
func (h *Hash) Sum() Sum {
	var s Sum
	copy(s[:], h.h.Sum(nil))
	return s
}
