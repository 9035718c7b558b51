package types

import "strconv"

// DefaultPlugboardName is the plugboard selected when none is requested.
const DefaultPlugboardName = "1"

// defaultRotorCount is how many catalog rotors make up the default machine.
const defaultRotorCount = 3

// Catalog is the set of rotor, reflector and plugboard specs available to
// build a machine from. It mirrors the three configuration files:
// {"rotors": [...]}, {"reflectors": [...]} and {"plugboards": [...]}.
type Catalog struct {
	Rotors     []RotorSpec     `json:"rotors" yaml:"rotors"`
	Reflectors []ReflectorSpec `json:"reflectors" yaml:"reflectors"`
	Plugboards []PlugboardSpec `json:"plugboards" yaml:"plugboards"`
}

// DefaultCatalog returns the built-in catalog: the historical rotors I–V,
// reflectors B and C and an identity plugboard named "1".
func DefaultCatalog() Catalog {
	return Catalog{
		Rotors: []RotorSpec{
			{Name: "I", Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Notch: "Q"},
			{Name: "II", Wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", Notch: "E"},
			{Name: "III", Wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", Notch: "V"},
			{Name: "IV", Wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", Notch: "J"},
			{Name: "V", Wiring: "VZBRGITYUPSDNHLXAWMJQOFECK", Notch: "Z"},
		},
		Reflectors: []ReflectorSpec{
			{Name: "B", Wiring: "YRUHQSLDPXNGOKMIEBFZCWVJAT"},
			{Name: "C", Wiring: "FVPJIAOYEDRZXWGCTKUQSBNMHL"},
		},
		Plugboards: []PlugboardSpec{
			{Name: DefaultPlugboardName, Connections: map[string]string{}},
		},
	}
}

// Rotor returns the rotor at the 1-based index.
func (c Catalog) Rotor(index int) (RotorSpec, error) {
	if index < 1 || index > len(c.Rotors) {
		return RotorSpec{}, &ConfigError{
			Kind:      ErrConfigurationNotFound,
			Component: "rotor",
			Name:      strconv.Itoa(index),
			Reason:    "catalog has " + strconv.Itoa(len(c.Rotors)) + " rotors",
		}
	}
	return c.Rotors[index-1], nil
}

// DefaultRotorIndices returns the 1-based indices of the default rotor set:
// the first three catalog rotors, or all of them when there are fewer.
func (c Catalog) DefaultRotorIndices() []int {
	n := min(defaultRotorCount, len(c.Rotors))
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Reflector returns the reflector with the given name. An empty name
// selects the first reflector.
func (c Catalog) Reflector(name string) (ReflectorSpec, error) {
	if name == "" && len(c.Reflectors) > 0 {
		return c.Reflectors[0], nil
	}
	for _, r := range c.Reflectors {
		if r.Name == name {
			return r, nil
		}
	}
	return ReflectorSpec{}, &ConfigError{Kind: ErrConfigurationNotFound, Component: "reflector", Name: name}
}

// Plugboard returns the plugboard with the given name. An empty name
// selects the plugboard named "1", falling back to the first one.
func (c Catalog) Plugboard(name string) (PlugboardSpec, error) {
	lookup := name
	if lookup == "" {
		lookup = DefaultPlugboardName
	}
	for _, p := range c.Plugboards {
		if p.Name == lookup {
			return p, nil
		}
	}
	if name == "" && len(c.Plugboards) > 0 {
		return c.Plugboards[0], nil
	}
	return PlugboardSpec{}, &ConfigError{Kind: ErrConfigurationNotFound, Component: "plugboard", Name: name}
}
