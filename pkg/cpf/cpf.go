// Package cpf validates and normalizes Brazilian CPF tax identifiers.
//
// A CPF is an 11-digit identifier whose two trailing digits are check digits
// computed by a weighted modulo-11 algorithm over the leading nine. This
// package is pure: it never touches storage and never errors, making the
// rules independently testable before any persistence is involved.
package cpf

import "strings"

// Normalize strips every character except the digits 0-9, yielding the
// canonical storage form of a CPF. "123.456.789-09" becomes "12345678909".
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether raw is a checksum-valid CPF. Formatting is ignored;
// the input is normalized first. Returns false (never an error) for any
// input that does not reduce to a valid 11-digit CPF.
func Valid(raw string) bool {
	digits := Normalize(raw)
	if len(digits) != 11 {
		return false
	}
	if allSame(digits) {
		// Sequences like 111.111.111-11 satisfy the checksum but are not
		// issued identifiers.
		return false
	}

	d := make([]int, 11)
	for i := 0; i < 11; i++ {
		d[i] = int(digits[i] - '0')
	}

	return d[9] == checkDigit(d[:9], 10) && d[10] == checkDigit(d[:10], 11)
}

// checkDigit computes one verification digit: a weighted sum with weights
// descending from firstWeight down to 2, then 11 - (sum mod 11), where
// results of 10 or 11 map to 0.
func checkDigit(digits []int, firstWeight int) int {
	sum := 0
	for i, digit := range digits {
		sum += digit * (firstWeight - i)
	}
	digit := 11 - sum%11
	if digit >= 10 {
		return 0
	}
	return digit
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
