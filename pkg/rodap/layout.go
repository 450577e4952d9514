package rodap

// Record layout. A serialized record is NameWidth bytes of name, the separator
// and NumberWidth digits.
const (
	NameWidth   = 20
	NumberWidth = 9
	RecordWidth = NameWidth + 1 + NumberWidth

	Separator = ';'
	Newline   = '\n'

	MinFirstName = 2
	MinLastName  = 2
	// MaxFirstName leaves room for the space and the shortest last name.
	MaxFirstName = NameWidth - MinLastName - 1
)

// Segment identifies what a byte of the name field holds.
type Segment uint8

const (
	Filler Segment = iota
	FirstName
	LastName
)

func (s Segment) String() string {
	switch s {
	case FirstName:
		return "first"
	case LastName:
		return "last"
	default:
		return "filler"
	}
}

// Classify reports the segment of name-field position pos for a first name of
// length first and a last name of length last. Position first is the single
// separating space; everything after the last name is padding.
func Classify(pos, first, last int) Segment {
	switch {
	case pos < first:
		return FirstName
	case pos > first && pos < first+1+last:
		return LastName
	default:
		return Filler
	}
}

// LastNameMax is the longest last name that fits after a first name of the
// given length.
func LastNameMax(first int) int {
	return NameWidth - first - 1
}
