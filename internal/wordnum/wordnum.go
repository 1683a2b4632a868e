// Package wordnum decodes the English digit-word spelling that WRITE IN
// uses for its numeric (non-array) input mode: a run of words, one per
// decimal digit, most significant first.
//
// No third-party library covers this: it is a handful of digit names
// specific to one esoteric language's I/O convention, not a general
// number-parsing concern any ecosystem package addresses.
package wordnum

import (
	"fmt"
	"strings"
)

var digitWords = map[string]byte{
	"ZERO":  0,
	"OH":    0,
	"ONE":   1,
	"TWO":   2,
	"THREE": 3,
	"FOUR":  4,
	"FIVE":  5,
	"SIX":   6,
	"SEVEN": 7,
	"EIGHT": 8,
	"NINE":  9,
}

var digitNames = [10]string{
	"ZERO", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
}

// IsDigitWord reports whether w (already upper-cased) names a decimal digit.
func IsDigitWord(w string) bool {
	_, ok := digitWords[w]
	return ok
}

// Decode converts a run of digit words, most significant first, into the
// decimal number they spell. An empty input decodes to 0, matching an
// input line with no digits at all.
func Decode(words []string) (uint32, error) {
	if len(words) == 0 {
		return 0, nil
	}
	var n uint64
	for _, w := range words {
		d, ok := digitWords[strings.ToUpper(w)]
		if !ok {
			return 0, fmt.Errorf("wordnum: %q is not a digit word", w)
		}
		n = n*10 + uint64(d)
		if n > 1<<32-1 {
			return 0, fmt.Errorf("wordnum: value overflows 32 bits")
		}
	}
	return uint32(n), nil
}

// Encode spells n out as a run of digit words, most significant first,
// writing ZERO (never OH) for a zero digit. WRITE IN's own input never
// needs to emit digit words; Encode exists to make the codec testable by
// round trip.
func Encode(n uint32) []string {
	if n == 0 {
		return []string{digitNames[0]}
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte(n % 10)}, digits...)
		n /= 10
	}
	words := make([]string, len(digits))
	for i, d := range digits {
		words[i] = digitNames[d]
	}
	return words
}
