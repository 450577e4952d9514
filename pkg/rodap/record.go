package rodap

import (
	"bytes"
	"fmt"
)

// Record is a decoded record line.
type Record struct {
	First  string
	Last   string
	Number string
}

// ParseRecord decodes a single record line without its newline and checks it
// against the layout produced by Synthesizer.
func ParseRecord(line []byte) (Record, error) {
	if len(line) != RecordWidth {
		return Record{}, fmt.Errorf("%w: length %d, want %d", ErrMalformed, len(line), RecordWidth)
	}
	if line[NameWidth] != Separator {
		return Record{}, fmt.Errorf("%w: missing separator", ErrMalformed)
	}

	name := line[:NameWidth]
	first := bytes.IndexByte(name, ' ')
	if first < MinFirstName || first > MaxFirstName {
		return Record{}, fmt.Errorf("%w: first name length %d", ErrMalformed, first)
	}
	last := bytes.IndexByte(name[first+1:], ' ')
	if last < 0 {
		last = NameWidth - first - 1
	}
	if last < MinLastName || last > LastNameMax(first) {
		return Record{}, fmt.Errorf("%w: last name length %d", ErrMalformed, last)
	}

	for j, b := range name {
		var ok bool
		switch {
		case Classify(j, first, last) == Filler:
			ok = b == ' '
		case j == 0:
			ok = b >= 'A' && b <= 'Z'
		default:
			ok = b >= 'a' && b <= 'z'
		}
		if !ok {
			return Record{}, fmt.Errorf("%w: unexpected %q at name position %d", ErrMalformed, b, j)
		}
	}

	number := line[NameWidth+1:]
	for k, b := range number {
		if b < '0' || b > '9' {
			return Record{}, fmt.Errorf("%w: unexpected %q at number position %d", ErrMalformed, b, k)
		}
	}

	return Record{
		First:  string(name[:first]),
		Last:   string(name[first+1 : first+1+last]),
		Number: string(number),
	}, nil
}
