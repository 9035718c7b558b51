package symbols

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Sentinel is the first letter of every code.
const Sentinel = 'Z'

// SentinelCode is the code for a literal Sentinel. Escaping it means every
// Sentinel in encoded text starts a code.
const SentinelCode = "ZZZ"

// ErrInvalidTable reports a custom code table that cannot be decoded
// unambiguously.
var ErrInvalidTable = errors.New("symbols: invalid code table")

// Codec maps characters to uppercase codes and back.
type Codec struct {
	forward map[rune]string
	reverse map[string]rune
	maxLen  int
}

// DefaultTable returns a copy of the built-in code table.
func DefaultTable() map[rune]string {
	t := map[rune]string{
		' ':  "ZSP",
		'.':  "ZPD",
		',':  "ZCM",
		'?':  "ZQM",
		'!':  "ZEX",
		':':  "ZCL",
		'#':  "ZHS",
		'-':  "ZHP",
		'_':  "ZLN",
		'$':  "ZDL",
		'%':  "ZPC",
		'\'': "ZSQ",
		'"':  "ZDQ",
		'=':  "ZEQ",
		'+':  "ZPL",
		'&':  "ZAN",
		'\n': "ZNL",
		'(':  "ZLP",
		')':  "ZRP",
		'/':  "ZSL",
		';':  "ZSC",
		'@':  "ZAT",
		'*':  "ZAS",
		'\t': "ZTB",
		'\r': "ZCR",
	}
	for i := 0; i < 10; i++ {
		t[rune('0'+i)] = "ZN" + string(rune('A'+i))
	}
	for i := 0; i < 26; i++ {
		t[rune('a'+i)] = "ZU" + string(rune('A'+i))
	}
	t[Sentinel] = SentinelCode
	return t
}

var defaultCodec = mustNew(DefaultTable())

// Default returns the codec for the built-in table.
func Default() *Codec { return defaultCodec }

func mustNew(table map[rune]string) *Codec {
	c, err := New(table)
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a codec from table. Every code must be at least two uppercase
// letters starting with Sentinel, and no code may be a prefix of another.
// Uppercase letters other than Sentinel cannot be mapped because they pass
// through the cipher as themselves. Sentinel is mapped to SentinelCode when
// table leaves it out.
func New(table map[rune]string) (*Codec, error) {
	c := &Codec{
		forward: make(map[rune]string, len(table)+1),
		reverse: make(map[string]rune, len(table)+1),
	}
	if _, ok := table[Sentinel]; !ok {
		table = maps.Clone(table)
		if table == nil {
			table = make(map[rune]string, 1)
		}
		table[Sentinel] = SentinelCode
	}
	for ch, code := range table {
		switch {
		case ch >= 'A' && ch <= 'Z' && ch != Sentinel:
			return nil, fmt.Errorf("%w: uppercase %q cannot be mapped", ErrInvalidTable, ch)
		case len(code) < 2:
			return nil, fmt.Errorf("%w: code %q for %q is too short", ErrInvalidTable, code, ch)
		case code[0] != Sentinel:
			return nil, fmt.Errorf("%w: code %q for %q does not start with %c", ErrInvalidTable, code, ch, Sentinel)
		case !IsCodeText(code):
			return nil, fmt.Errorf("%w: code %q for %q is not uppercase", ErrInvalidTable, code, ch)
		}
		if prev, dup := c.reverse[code]; dup {
			return nil, fmt.Errorf("%w: code %q used for %q and %q", ErrInvalidTable, code, prev, ch)
		}
		c.forward[ch] = code
		c.reverse[code] = ch
		c.maxLen = max(c.maxLen, len(code))
	}
	for code, ch := range c.reverse {
		for n := 2; n < len(code); n++ {
			if other, clash := c.reverse[code[:n]]; clash {
				return nil, fmt.Errorf("%w: code %q for %q is a prefix of %q for %q",
					ErrInvalidTable, code[:n], other, code, ch)
			}
		}
	}
	return c, nil
}

// Encode replaces every mapped character with its code.
func (c *Codec) Encode(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if code, ok := c.forward[r]; ok {
			b.WriteString(code)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decode replaces codes with their characters. Codes are prefix-free, so at
// most one can match at any position.
func (c *Codec) Decode(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] == Sentinel {
			if r, n, ok := c.match(text[i:]); ok {
				b.WriteRune(r)
				i += n
				continue
			}
		}
		// Codes are ASCII, so copying byte by byte keeps multi-byte
		// runes intact.
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func (c *Codec) match(s string) (rune, int, bool) {
	for n := min(c.maxLen, len(s)); n >= 2; n-- {
		if r, ok := c.reverse[s[:n]]; ok {
			return r, n, true
		}
	}
	return 0, 0, false
}

// Table returns a copy of the codec's character to code mapping.
func (c *Codec) Table() map[rune]string { return maps.Clone(c.forward) }

// IsCodeText reports whether text is non-empty and consists of A–Z only,
// i.e. it looks like ciphertext that should be decoded after deciphering.
func IsCodeText(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < 'A' || text[i] > 'Z' {
			return false
		}
	}
	return true
}
