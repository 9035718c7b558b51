package enigma

import (
	"fmt"

	"enigmasim/internal/domain"
)

// Reflector is a fixed involutive substitution with no fixed point. It is
// immutable once built.
type Reflector struct {
	name   string
	wiring [alphabetSize]int
}

// NewReflector validates that spec is a fixed-point-free involution.
func NewReflector(spec domain.ReflectorSpec) (*Reflector, error) {
	wiring, reason := parsePermutation(spec.Wiring)
	if reason == "" {
		reason = involutionDefect(wiring)
	}
	if reason != "" {
		return nil, &domain.ConfigError{Kind: domain.ErrInvalidWiring, Component: "reflector", Name: spec.Name, Reason: reason}
	}
	return &Reflector{name: spec.Name, wiring: wiring}, nil
}

func involutionDefect(w [alphabetSize]int) string {
	for i, j := range w {
		if i == j {
			return fmt.Sprintf("letter %c maps to itself", indexLetter(i))
		}
		if w[j] != i {
			return fmt.Sprintf("%c maps to %c but %c maps to %c",
				indexLetter(i), indexLetter(j), indexLetter(j), indexLetter(w[j]))
		}
	}
	return ""
}

// Process reflects a signal.
func (f *Reflector) Process(signal int) int { return f.wiring[signal] }

// Name returns the configured reflector name.
func (f *Reflector) Name() string { return f.name }

// Spec returns the reflector's configuration in canonical uppercase form.
func (f *Reflector) Spec() domain.ReflectorSpec {
	return domain.ReflectorSpec{Name: f.name, Wiring: formatPermutation(f.wiring)}
}
