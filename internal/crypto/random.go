package crypto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var errBadBound = errors.New("crypto: bound must be positive")

// Intn returns a uniform integer in [0,n) read from r. Values that would
// bias the result are rejected and redrawn.
func Intn(r io.Reader, n int) (int, error) {
	if n <= 0 || uint64(n) > 1<<32 {
		return 0, errBadBound
	}
	const space = 1 << 32
	limit := space - space%uint64(n)
	var buf [4]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("read random: %w", err)
		}
		if v := uint64(binary.BigEndian.Uint32(buf[:])); v < limit {
			return int(v % uint64(n)), nil
		}
	}
}

// Perm returns a uniform permutation of [0,n) using a Fisher–Yates shuffle
// driven by r.
func Perm(r io.Reader, n int) ([]int, error) {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := Intn(r, i+1)
		if err != nil {
			return nil, err
		}
		p[i], p[j] = p[j], p[i]
	}
	return p, nil
}

// Letters maps indices to the letters A–Z.
func Letters(idx []int) string {
	b := make([]byte, len(idx))
	for i, v := range idx {
		b[i] = byte('A' + v)
	}
	return string(b)
}

// RandomPairs draws n disjoint letter pairs such as "QX", each written with
// the smaller letter first.
func RandomPairs(r io.Reader, n int) ([]string, error) {
	if n < 0 || n > 13 {
		return nil, fmt.Errorf("crypto: cannot draw %d letter pairs", n)
	}
	p, err := Perm(r, 26)
	if err != nil {
		return nil, err
	}
	pairs := make([]string, n)
	for i := range pairs {
		a, b := p[2*i], p[2*i+1]
		if a > b {
			a, b = b, a
		}
		pairs[i] = Letters([]int{a, b})
	}
	return pairs, nil
}

// RandomLetters draws n independent letters.
func RandomLetters(r io.Reader, n int) (string, error) {
	idx := make([]int, n)
	for i := range idx {
		v, err := Intn(r, 26)
		if err != nil {
			return "", err
		}
		idx[i] = v
	}
	return Letters(idx), nil
}
