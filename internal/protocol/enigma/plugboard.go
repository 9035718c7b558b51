package enigma

import (
	"fmt"

	"enigmasim/internal/domain"
)

// Plugboard swaps letter pairs before and after the rotor stack. Letters
// without a connection map to themselves.
type Plugboard struct {
	name        string
	connections [alphabetSize]int
}

// NewPlugboard validates that every connection in spec is mirrored and
// returns the plugboard. Keys and values are single letters of either case.
func NewPlugboard(spec domain.PlugboardSpec) (*Plugboard, error) {
	explicit := make(map[int]int, len(spec.Connections))
	for k, v := range spec.Connections {
		ki, kok := singleLetter(k)
		vi, vok := singleLetter(v)
		if !kok || !vok {
			return nil, plugboardError(spec.Name, fmt.Sprintf("connection %q -> %q is not a letter pair", k, v))
		}
		if prev, dup := explicit[ki]; dup && prev != vi {
			return nil, plugboardError(spec.Name, fmt.Sprintf("letter %c is connected twice", indexLetter(ki)))
		}
		explicit[ki] = vi
	}

	p := &Plugboard{name: spec.Name}
	for i := range p.connections {
		p.connections[i] = i
	}
	// Walk the alphabet in order so the reported defect is deterministic.
	for k := 0; k < alphabetSize; k++ {
		v, ok := explicit[k]
		if !ok {
			continue
		}
		if back, mirrored := explicit[v]; v != k && (!mirrored || back != k) {
			return nil, plugboardError(spec.Name, fmt.Sprintf("%c -> %c is not mirrored by %c -> %c",
				indexLetter(k), indexLetter(v), indexLetter(v), indexLetter(k)))
		}
		p.connections[k] = v
	}
	return p, nil
}

func plugboardError(name, reason string) error {
	return &domain.ConfigError{Kind: domain.ErrInvalidPlugboard, Component: "plugboard", Name: name, Reason: reason}
}

// Process substitutes a signal through the plugboard.
func (p *Plugboard) Process(signal int) int { return p.connections[signal] }

// Name returns the configured plugboard name.
func (p *Plugboard) Name() string { return p.name }

// Pairs lists each swapped pair once, in alphabetical order, e.g. "AB".
func (p *Plugboard) Pairs() []string {
	var out []string
	for k, v := range p.connections {
		if k < v {
			out = append(out, string([]rune{indexLetter(k), indexLetter(v)}))
		}
	}
	return out
}

// Spec returns the plugboard's configuration with uppercase keys; identity
// entries are omitted.
func (p *Plugboard) Spec() domain.PlugboardSpec {
	return domain.PlugboardFromPairs(p.name, p.Pairs())
}
