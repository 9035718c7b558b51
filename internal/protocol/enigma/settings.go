package enigma

import "enigmasim/internal/domain"

// RotorState is one rotor of a Settings snapshot.
type RotorState struct {
	Spec     domain.RotorSpec
	Position rune
}

// Settings is a read-only snapshot of a machine's configuration and state.
type Settings struct {
	Rotors    []RotorState // leftmost first
	Reflector domain.ReflectorSpec
	Plugboard domain.PlugboardSpec
	Pairs     []string
	Positions string
}

// Settings captures the current configuration. The snapshot does not change
// as the machine keeps running.
func (m *Machine) Settings() Settings {
	s := Settings{
		Rotors:    make([]RotorState, len(m.rotors)),
		Reflector: m.reflector.Spec(),
		Plugboard: m.plugboard.Spec(),
		Pairs:     m.plugboard.Pairs(),
		Positions: m.Positions(),
	}
	for i, r := range m.rotors {
		s.Rotors[i] = RotorState{Spec: r.Spec(), Position: indexLetter(r.Position())}
	}
	return s
}

// KeySheet returns the machine's configuration as a named key sheet. The
// creation time is left for the caller to fill in.
func (s Settings) KeySheet(name domain.KeySheetName) domain.KeySheet {
	specs := make([]domain.RotorSpec, len(s.Rotors))
	for i, r := range s.Rotors {
		specs[i] = r.Spec
	}
	return domain.KeySheet{
		Name:      name,
		Rotors:    specs,
		Reflector: s.Reflector,
		Plugboard: s.Plugboard,
		Positions: s.Positions,
	}
}
