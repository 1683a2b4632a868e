// Package romannum renders unsigned integers as Roman numerals for READ
// OUT, extended past the classical 1..3999 range with the traditional
// overline convention: a numeral carrying one combining overline stands
// for 1000 times its ordinary value, two overlines for 1000000 times, and
// so on, which is how READ OUT represents a twospot's full 32-bit range.
//
// This is specific enough to one archaic output convention that nothing in
// the wider Go ecosystem implements it; it is written by hand rather than
// pulled from a library for that reason.
package romannum

import "strings"

const overline = "̅" // combining overline, stacks when repeated

var thousandsDigits = []struct {
	val uint32
	sym string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// digits renders n (0..3999) as an ordinary Roman numeral. n==0 renders as
// the empty string, so callers can omit all-zero groups.
func digits(n uint32) string {
	var sb strings.Builder
	for _, d := range thousandsDigits {
		for n >= d.val {
			sb.WriteString(d.sym)
			n -= d.val
		}
	}
	return sb.String()
}

func withOverlines(s string, layers int) string {
	if layers == 0 || s == "" {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		sb.WriteRune(r)
		for i := 0; i < layers; i++ {
			sb.WriteString(overline)
		}
	}
	return sb.String()
}

// Encode renders n as an overline-extended Roman numeral. Zero renders as
// "N" (nulla), the traditional placeholder for the absence of a quantity.
func Encode(n uint32) string {
	if n == 0 {
		return "N"
	}

	var groups [4]uint32 // groups[i] is the base-1000 digit for 1000^i
	for i := range groups {
		groups[i] = n % 1000
		n /= 1000
	}
	if groups[1] < 4 { // thousands below 4000 stay classical (M, MM, MMM)
		groups[0] += groups[1] * 1000
		groups[1] = 0
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		parts = append(parts, withOverlines(digits(groups[i]), i))
	}
	return strings.Join(parts, " ")
}
