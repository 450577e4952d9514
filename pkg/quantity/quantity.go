// Package quantity converts between integer magnitudes and compact human strings
// such as "10k", "2.5M" or "1.00G".
package quantity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidQuantity is returned when a string cannot be read as a quantity.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Suffix pairs a magnitude symbol with its multiplier.
type Suffix struct {
	Symbol     string
	Multiplier int64
}

// table is scanned largest to smallest. The last entry is the fallback and must
// keep an empty symbol and a multiplier of 1.
var table = [...]Suffix{
	{"G", 1000 * 1000 * 1000},
	{"M", 1000 * 1000},
	{"k", 1000},
	{"", 1},
}

// Table returns a copy of the suffix table in scan order.
func Table() []Suffix {
	out := make([]Suffix, len(table))
	copy(out, table[:])
	return out
}

// Format renders n using the largest suffix whose quotient has a non-zero
// integer part, with two fractional digits. Values below 1000 are rendered as
// plain integers.
func Format(n int64) string {
	for _, s := range table {
		if s.Symbol == "" {
			break
		}
		if n/s.Multiplier > 0 {
			return fixed2(n, s.Multiplier) + s.Symbol
		}
	}
	return strconv.FormatInt(n, 10)
}

// fixed2 renders n/m with two decimals, rounding half up on the exact
// quotient. Splitting off the integer part keeps rem*100 in range.
func fixed2(n, m int64) string {
	whole, rem := n/m, n%m
	frac := (rem*100 + m/2) / m
	if frac == 100 {
		whole, frac = whole+1, 0
	}
	return fmt.Sprintf("%d.%02d", whole, frac)
}

// FormatBytes is Format with a trailing "B", as used for file sizes.
func FormatBytes(n int64) string {
	return Format(n) + "B"
}

// Parse reads a quantity. A trailing letter matching a suffix scales the
// (possibly fractional) prefix, truncating toward zero. Anything else must be a
// plain decimal integer.
func Parse(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidQuantity)
	}

	last, size := utf8.DecodeLastRuneInString(s)
	if unicode.IsLetter(last) {
		if mult, ok := multiplier(string(last)); ok {
			return scale(s, s[:len(s)-size], mult)
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	return n, nil
}

func scale(s, prefix string, mult int64) (int64, error) {
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	v := f * float64(mult)
	// float64(math.MaxInt64) rounds up to 2^63
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidQuantity, s)
	}
	return int64(v), nil
}

func multiplier(symbol string) (int64, bool) {
	for _, s := range table {
		if s.Symbol == symbol {
			return s.Multiplier, true
		}
	}
	return 0, false
}
