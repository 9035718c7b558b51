package types

// RotorSpec describes one rotor as supplied by configuration.
//
// Wiring is a 26-letter permutation of A–Z and Notch a single letter.
// RingSetting is kept for configuration compatibility; the machine accepts
// and reports it but it does not change the substitution.
type RotorSpec struct {
	Name        string `json:"name" yaml:"name"`
	Wiring      string `json:"wiring" yaml:"wiring"`
	Notch       string `json:"notch" yaml:"notch"`
	RingSetting int    `json:"ring_setting,omitempty" yaml:"ring_setting,omitempty"`
}

// ReflectorSpec describes a reflector. Wiring must be an involution with no
// fixed point.
type ReflectorSpec struct {
	Name   string `json:"name" yaml:"name"`
	Wiring string `json:"wiring" yaml:"wiring"`
}

// PlugboardSpec describes a plugboard as a letter-to-letter mapping. Every
// mapped letter must map back (A:B requires B:A); identity entries are
// allowed and unmapped letters pass straight through.
type PlugboardSpec struct {
	Name        string            `json:"name" yaml:"name"`
	Connections map[string]string `json:"connections" yaml:"connections"`
}

// PlugboardFromPairs builds a symmetric PlugboardSpec from letter pairs such
// as "AB". A pair that is not exactly two characters is kept as a connection
// to nothing, so NewPlugboard rejects it rather than silently dropping it.
func PlugboardFromPairs(name string, pairs []string) PlugboardSpec {
	conn := make(map[string]string, 2*len(pairs))
	for _, p := range pairs {
		rs := []rune(p)
		if len(rs) != 2 {
			conn[p] = ""
			continue
		}
		a, b := string(rs[0]), string(rs[1])
		conn[a] = b
		conn[b] = a
	}
	return PlugboardSpec{Name: name, Connections: conn}
}

// Selection picks machine components out of a Catalog. Zero values select
// the catalog defaults.
type Selection struct {
	RotorIndices []int  // 1-based
	Reflector    string // by name
	Plugboard    string // by name
	Positions    string // one letter per rotor, leftmost first
}
