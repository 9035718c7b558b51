package enigma

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"enigmasim/internal/domain"
)

// Machine owns an ordered, non-empty rotor stack (index 0 is leftmost), a
// reflector and a plugboard, and all mutable cipher state.
type Machine struct {
	rotors    []*Rotor
	reflector *Reflector
	plugboard *Plugboard
	log       *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for Debug-level stepping and routing
// traces. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// New builds a machine from already-loaded specs. All rotors start at
// position A. Nothing is read from disk; choosing default specs is the
// caller's decision.
func New(
	rotors []domain.RotorSpec,
	reflector domain.ReflectorSpec,
	plugboard domain.PlugboardSpec,
	opts ...Option,
) (*Machine, error) {
	m := &Machine{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(m)
	}

	rs, err := buildRotors(rotors)
	if err != nil {
		return nil, err
	}
	rf, err := NewReflector(reflector)
	if err != nil {
		return nil, err
	}
	pb, err := NewPlugboard(plugboard)
	if err != nil {
		return nil, err
	}
	m.rotors, m.reflector, m.plugboard = rs, rf, pb
	return m, nil
}

func buildRotors(specs []domain.RotorSpec) ([]*Rotor, error) {
	if len(specs) == 0 {
		return nil, &domain.ConfigError{
			Kind:      domain.ErrConfigurationNotFound,
			Component: "rotor set",
			Reason:    "at least one rotor is required",
		}
	}
	out := make([]*Rotor, 0, len(specs))
	for _, s := range specs {
		r, err := NewRotor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// SetRotorPositions sets rotor positions from letters, leftmost rotor first.
// A shorter string sets only a prefix of the rotors and letters beyond the
// rotor count are ignored. Any non-letter rejects the whole call.
func (m *Machine) SetRotorPositions(letters string) error {
	positions := make([]int, 0, len(m.rotors))
	for _, r := range letters {
		idx, ok := letterIndex(r)
		if !ok {
			return &domain.ConfigError{
				Kind:      domain.ErrMalformedPosition,
				Component: "positions",
				Name:      letters,
				Reason:    fmt.Sprintf("%q is not a letter", r),
			}
		}
		if len(positions) < len(m.rotors) {
			positions = append(positions, idx)
		}
	}
	for i, p := range positions {
		m.rotors[i].SetPosition(p)
	}
	m.log.Debug("rotor positions set", "positions", m.Positions())
	return nil
}

// LoadRotors replaces the rotor stack with specs[i-1] for each 1-based index,
// leftmost first. The new rotors start at position A.
func (m *Machine) LoadRotors(specs []domain.RotorSpec, indices []int) error {
	if len(indices) == 0 {
		return &domain.ConfigError{
			Kind:      domain.ErrConfigurationNotFound,
			Component: "rotor set",
			Reason:    "no rotors selected",
		}
	}
	selected := make([]domain.RotorSpec, 0, len(indices))
	for _, i := range indices {
		if i < 1 || i > len(specs) {
			return &domain.ConfigError{
				Kind:      domain.ErrConfigurationNotFound,
				Component: "rotor",
				Name:      strconv.Itoa(i),
				Reason:    fmt.Sprintf("have %d rotor specs", len(specs)),
			}
		}
		selected = append(selected, specs[i-1])
	}
	rs, err := buildRotors(selected)
	if err != nil {
		return err
	}
	m.rotors = rs
	m.log.Debug("rotors loaded", "rotors", m.rotorNames())
	return nil
}

// LoadPlugboard replaces the plugboard.
func (m *Machine) LoadPlugboard(spec domain.PlugboardSpec) error {
	pb, err := NewPlugboard(spec)
	if err != nil {
		return err
	}
	m.plugboard = pb
	m.log.Debug("plugboard loaded", "name", pb.Name(), "pairs", pb.Pairs())
	return nil
}

// SetReflector replaces the reflector.
func (m *Machine) SetReflector(spec domain.ReflectorSpec) error {
	rf, err := NewReflector(spec)
	if err != nil {
		return err
	}
	m.reflector = rf
	m.log.Debug("reflector set", "name", rf.Name())
	return nil
}

// ProcessText runs every character of text through ProcessChar in order.
func (m *Machine) ProcessText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		b.WriteRune(m.ProcessChar(c))
	}
	return b.String()
}

// ProcessChar enciphers one character. Non-letters are returned unchanged
// and do not step the rotors.
func (m *Machine) ProcessChar(c rune) rune {
	in, ok := letterIndex(c)
	if !ok {
		return c
	}
	m.step()

	s := m.plugboard.Process(in)
	for i := len(m.rotors) - 1; i >= 0; i-- {
		s = m.rotors[i].Forward(s)
	}
	s = m.reflector.Process(s)
	for _, r := range m.rotors {
		s = r.Backward(s)
	}
	out := indexLetter(m.plugboard.Process(s))

	if m.log.Enabled(context.Background(), slog.LevelDebug) {
		m.log.Debug("letter processed", "in", string(indexLetter(in)), "out", string(out), "positions", m.Positions())
	}
	return out
}

// step advances the rotors for one letter. The cascade looks at notch
// positions before any rotor moves.
func (m *Machine) step() {
	n := len(m.rotors)
	right := m.rotors[n-1]
	if n >= 3 {
		left, middle := m.rotors[n-3], m.rotors[n-2]
		switch {
		case middle.AtNotch():
			middle.Rotate()
			left.Rotate()
		case right.AtNotch():
			middle.Rotate()
		}
	}
	right.Rotate()
}

// Positions returns the rotor positions as letters, leftmost first.
func (m *Machine) Positions() string {
	out := make([]rune, len(m.rotors))
	for i, r := range m.rotors {
		out[i] = indexLetter(r.Position())
	}
	return string(out)
}

// Rotors returns the number of rotors in the stack.
func (m *Machine) Rotors() int { return len(m.rotors) }

// Clone returns an independent machine with the same components and rotor
// positions. Reflector and plugboard are immutable and shared.
func (m *Machine) Clone() *Machine {
	rs := make([]*Rotor, len(m.rotors))
	for i, r := range m.rotors {
		cp := *r
		rs[i] = &cp
	}
	return &Machine{rotors: rs, reflector: m.reflector, plugboard: m.plugboard, log: m.log}
}

func (m *Machine) rotorNames() []string {
	names := make([]string, len(m.rotors))
	for i, r := range m.rotors {
		names[i] = r.Name()
	}
	return names
}
