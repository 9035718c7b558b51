// Package symbols carries extended text through a 26-letter cipher.
//
// Every supported character that is not an uppercase letter (lowercase
// letters, digits, punctuation, whitespace) is replaced by a short uppercase
// code that starts with the sentinel letter Z. The coded text contains only
// A–Z plus whatever unmapped characters were present, so it survives a trip
// through the machine; Decode restores the original characters.
//
// # Decoding
//
// The sentinel letter itself is escaped as ZZZ, so every Z in encoded text
// starts a code. Codes are prefix-free, which makes the split unique: Decode
// scans left to right and replaces the code that matches at each Z.
// Anything that is not a code passes through unchanged, so Decode never
// fails.
//
// # Limitations
//
// Decode only inverts Encode. Uppercase text that was never encoded and
// happens to contain a code (for example the literal word "ZSP") decodes to
// the mapped symbol.
package symbols
