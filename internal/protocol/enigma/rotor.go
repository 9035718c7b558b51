package enigma

import (
	"fmt"

	"enigmasim/internal/domain"
)

// Rotor is a single stepping substitution wheel.
//
// The wiring is stored together with its inverse so both directions are a
// table lookup. The ring setting is accepted and reported but does not take
// part in the substitution.
type Rotor struct {
	name        string
	wiring      [alphabetSize]int
	inverse     [alphabetSize]int
	notch       int
	position    int
	ringSetting int
}

// NewRotor validates spec and returns a rotor at position A.
func NewRotor(spec domain.RotorSpec) (*Rotor, error) {
	wiring, reason := parsePermutation(spec.Wiring)
	if reason != "" {
		return nil, rotorError(spec.Name, reason)
	}
	notch, ok := singleLetter(spec.Notch)
	if !ok {
		return nil, rotorError(spec.Name, fmt.Sprintf("notch %q is not a single letter", spec.Notch))
	}
	if spec.RingSetting < 0 || spec.RingSetting >= alphabetSize {
		return nil, rotorError(spec.Name, fmt.Sprintf("ring setting %d out of range 0-25", spec.RingSetting))
	}

	r := &Rotor{
		name:        spec.Name,
		wiring:      wiring,
		notch:       notch,
		ringSetting: spec.RingSetting,
	}
	for in, out := range wiring {
		r.inverse[out] = in
	}
	return r, nil
}

func rotorError(name, reason string) error {
	return &domain.ConfigError{Kind: domain.ErrInvalidWiring, Component: "rotor", Name: name, Reason: reason}
}

// Forward maps a signal entering from the right-hand contacts.
func (r *Rotor) Forward(signal int) int {
	c := r.wiring[(signal+r.position)%alphabetSize]
	return mod26(c - r.position)
}

// Backward maps a signal returning from the reflector; it is the inverse of
// Forward at the same position.
func (r *Rotor) Backward(signal int) int {
	j := r.inverse[(signal+r.position)%alphabetSize]
	return mod26(j - r.position)
}

// Rotate advances the rotor one step and reports whether the new position is
// the notch.
func (r *Rotor) Rotate() bool {
	r.position = (r.position + 1) % alphabetSize
	return r.position == r.notch
}

// AtNotch reports whether the rotor currently sits at its notch.
func (r *Rotor) AtNotch() bool { return r.position == r.notch }

// Position returns the current offset in [0,26).
func (r *Rotor) Position() int { return r.position }

// SetPosition sets the offset, reduced modulo 26.
func (r *Rotor) SetPosition(p int) { r.position = mod26(p) }

// Name returns the configured rotor name.
func (r *Rotor) Name() string { return r.name }

// Notch returns the notch letter.
func (r *Rotor) Notch() rune { return indexLetter(r.notch) }

// RingSetting returns the inert ring setting.
func (r *Rotor) RingSetting() int { return r.ringSetting }

// Spec returns the rotor's configuration in canonical uppercase form.
func (r *Rotor) Spec() domain.RotorSpec {
	return domain.RotorSpec{
		Name:        r.name,
		Wiring:      formatPermutation(r.wiring),
		Notch:       string(r.Notch()),
		RingSetting: r.ringSetting,
	}
}
