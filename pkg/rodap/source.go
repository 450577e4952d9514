package rodap

import (
	"fmt"
	"sort"
)

// Source is the only entropy the synthesizer consumes.
type Source interface {
	// Bytes fills p with raw random bytes in a single draw.
	Bytes(p []byte)

	// IntRange returns a uniformly distributed integer in [lo, hi].
	// hi must not be smaller than lo.
	IntRange(lo, hi int) int
}

// DefaultSource reproduces the output of the original tool for a given seed.
const DefaultSource = "legacy"

// Sources maps source names to seeded constructors.
var Sources = map[string]func(seed int64) Source{
	"legacy": func(seed int64) Source { return NewLegacy(seed) },
	"pcg":    func(seed int64) Source { return NewPCG(seed) },
}

// NewSource returns the named source seeded with seed.
func NewSource(name string, seed int64) (Source, error) {
	factory, exists := Sources[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return factory(seed), nil
}

// SourceNames returns all registered source names, sorted.
func SourceNames() []string {
	names := make([]string, 0, len(Sources))
	for name := range Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
