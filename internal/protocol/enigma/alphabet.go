package enigma

import (
	"fmt"
	"strings"
)

// Alphabet is the coordinate space shared by every rotor, reflector and
// plugboard: index 0 is A, index 25 is Z.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const alphabetSize = len(Alphabet)

// letterIndex maps an ASCII letter of either case to 0–25.
func letterIndex(r rune) (int, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	default:
		return 0, false
	}
}

func indexLetter(i int) rune { return rune('A' + i) }

func mod26(n int) int {
	n %= alphabetSize
	if n < 0 {
		n += alphabetSize
	}
	return n
}

// singleLetter parses a one-letter string such as a notch or plugboard key.
func singleLetter(s string) (int, bool) {
	rs := []rune(strings.TrimSpace(s))
	if len(rs) != 1 {
		return 0, false
	}
	return letterIndex(rs[0])
}

// parsePermutation turns a 26-letter wiring string into index form. On
// failure it returns a non-empty reason.
func parsePermutation(wiring string) ([alphabetSize]int, string) {
	var perm [alphabetSize]int
	rs := []rune(wiring)
	if len(rs) != alphabetSize {
		return perm, fmt.Sprintf("wiring has %d letters, want %d", len(rs), alphabetSize)
	}
	var seen [alphabetSize]bool
	for i, r := range rs {
		idx, ok := letterIndex(r)
		if !ok {
			return perm, fmt.Sprintf("wiring contains non-letter %q", r)
		}
		if seen[idx] {
			return perm, fmt.Sprintf("wiring repeats letter %c", indexLetter(idx))
		}
		seen[idx] = true
		perm[i] = idx
	}
	return perm, ""
}

func formatPermutation(perm [alphabetSize]int) string {
	var b strings.Builder
	b.Grow(alphabetSize)
	for _, v := range perm {
		b.WriteRune(indexLetter(v))
	}
	return b.String()
}
