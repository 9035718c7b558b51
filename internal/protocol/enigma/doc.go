// Package enigma implements a rotor cipher machine in the style of the
// three-rotor Enigma: stepping rotors, a reflector and a plugboard.
//
// # Signal path
//
// For every ASCII letter the machine first steps its rotors, then routes the
// signal plugboard -> rotors (right to left) -> reflector -> rotors (left to
// right) -> plugboard. Any other character passes through unchanged and does
// not step the rotors. Lowercase letters are enciphered as their uppercase
// form.
//
// # Stepping
//
// With three or more rotors the three rightmost rotors (L, M, R) follow the
// historical double-stepping cascade, evaluated before substitution:
//
//  1. M at its notch: step M and L.
//  2. Otherwise R at its notch: step M.
//  3. Step R.
//
// Notch checks use the position before this character's own step. With fewer
// than three rotors only the rightmost rotor steps.
//
// # Reciprocity
//
// Because the reflector and plugboard are involutions and stepping depends
// only on how many letters were processed, two machines built from the same
// specs and positions undo each other: ProcessText(ProcessText(t)) == t.
//
// # Errors
//
// Construction and reconfiguration validate their input and return a
// *domain.ConfigError whose kind is one of domain.ErrInvalidWiring,
// domain.ErrInvalidPlugboard, domain.ErrConfigurationNotFound or
// domain.ErrMalformedPosition. A failed call leaves the machine unchanged.
// ProcessChar and ProcessText never fail.
//
// # Concurrency
//
// A Machine is NOT safe for concurrent use. Callers must serialise access.
package enigma
