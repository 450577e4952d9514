// Package history records completed generation runs so their output can be
// listed and verified later.
package history

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pkg.jsn.cam/rodapgen/pkg/storage"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

var runsBucket = []byte("runs")

// Run is the manifest of one generation.
type Run struct {
	ID          string        `json:"id"`
	Path        string        `json:"path"`
	Records     int64         `json:"records"`
	Seed        int64         `json:"seed"`
	Source      string        `json:"source"`
	Compression string        `json:"compression"`
	BufferSize  int           `json:"buffer_size"`
	Size        int64         `json:"size"`
	Checksum    string        `json:"checksum"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

// Store keeps runs in a storage backend.
type Store struct {
	js *storage.JSONStore
}

// Open opens the history database at path. storage.MemoryPath keeps it in memory.
func Open(path string) (*Store, error) {
	backend, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := New(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

// New returns a Store on top of backend.
func New(backend storage.Backend) (*Store, error) {
	if err := backend.CreateBucket(runsBucket); err != nil {
		return nil, fmt.Errorf("creating runs bucket: %w", err)
	}
	return &Store{js: storage.NewJSONStore(backend)}, nil
}

// Add stores run, assigning a time-ordered ID if it has none.
func (s *Store) Add(run *Run) error {
	if run.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating run id: %w", err)
		}
		run.ID = id.String()
	}
	return s.js.PutJSON(runsBucket, []byte(run.ID), run)
}

// Get returns the run with the given ID or unique ID prefix.
func (s *Store) Get(id string) (Run, error) {
	var run Run
	found, err := s.js.GetJSON(runsBucket, []byte(id), &run)
	if err != nil {
		return Run{}, err
	}
	if found {
		return run, nil
	}

	runs, err := s.List()
	if err != nil {
		return Run{}, err
	}
	var match []Run
	for _, r := range runs {
		if strings.HasPrefix(r.ID, id) {
			match = append(match, r)
		}
	}
	switch len(match) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return match[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s matches %d runs", ErrAmbiguousRun, id, len(match))
	}
}

// List returns all runs, oldest first.
func (s *Store) List() ([]Run, error) {
	var runs []Run
	err := s.js.ForEachJSON(runsBucket, func(k []byte, decode func(v any) error) error {
		var run Run
		if err := decode(&run); err != nil {
			return fmt.Errorf("run %s: %w", k, err)
		}
		runs = append(runs, run)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}

func (s *Store) Close() error {
	return s.js.Close()
}
