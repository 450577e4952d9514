// Package rodap synthesizes fixed-width person records: a space padded
// "First last" name, a ';' and a nine digit number.
//
//	Bbneniunrfxs krmuiib;573117809
//
// Output is fully determined by the Source, so a seeded source yields a
// reproducible stream.
package rodap

import (
	"context"
	"fmt"
	"io"
)

// Synthesizer builds one record at a time from a Source.
type Synthesizer struct {
	src  Source
	line [RecordWidth + 1]byte
}

// NewSynthesizer returns a Synthesizer drawing from src.
func NewSynthesizer(src Source) *Synthesizer {
	s := &Synthesizer{src: src}
	s.line[NameWidth] = Separator
	s.line[RecordWidth] = Newline
	return s
}

// Next synthesizes the next record and returns it followed by a newline. The
// returned slice is reused by the following call.
func (s *Synthesizer) Next() []byte {
	name := s.line[:NameWidth]
	number := s.line[NameWidth+1 : RecordWidth]

	// Name bytes are drawn before number bytes, then the two lengths.
	s.src.Bytes(name)
	s.src.Bytes(number)
	first := s.src.IntRange(MinFirstName, MaxFirstName)
	last := s.src.IntRange(MinLastName, LastNameMax(first))

	for j, b := range name {
		if Classify(j, first, last) == Filler {
			name[j] = ' '
			continue
		}
		// Only the very first letter is capitalized; the last name stays lowercase.
		base := byte('a')
		if j == 0 {
			base = 'A'
		}
		name[j] = b%26 + base
	}

	for k, b := range number {
		number[k] = b%10 + '0'
	}

	return s.line[:]
}

type flusher interface {
	Flush() error
}

// Generate writes n newline-joined records to w, with no trailing newline, and
// calls onProgress with the 1-based index after each record is written. A nil
// onProgress is allowed. If w has a Flush method it is flushed before returning.
//
// The context is checked between records. Write errors wrap ErrWrite.
func Generate(ctx context.Context, w io.Writer, src Source, n int64, onProgress func(written int64)) error {
	synth := NewSynthesizer(src)
	done := ctx.Done()

	for i := int64(0); i < n; i++ {
		select {
		case <-done:
			return ctx.Err()
		default:
		}

		line := synth.Next()
		if i == n-1 {
			line = line[:RecordWidth]
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrWrite, i+1, err)
		}

		if onProgress != nil {
			onProgress(i + 1)
		}
	}

	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("%w: flush: %w", ErrWrite, err)
		}
	}
	return nil
}
