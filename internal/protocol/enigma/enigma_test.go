package enigma_test

import (
	"errors"
	"strings"
	"testing"

	"enigmasim/internal/domain"
	"enigmasim/internal/protocol/enigma"
)

// newDefault returns rotors I-II-III, reflector B and an empty plugboard at AAA.
func newDefault(t *testing.T) *enigma.Machine {
	t.Helper()
	cat := domain.DefaultCatalog()
	m, err := enigma.New(cat.Rotors[:3], cat.Reflectors[0], cat.Plugboards[0])
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestRotor_BackwardInvertsForward(t *testing.T) {
	for _, spec := range domain.DefaultCatalog().Rotors {
		r, err := enigma.NewRotor(spec)
		if err != nil {
			t.Fatalf("NewRotor %s: %v", spec.Name, err)
		}
		for pos := 0; pos < 26; pos++ {
			r.SetPosition(pos)
			for s := 0; s < 26; s++ {
				if got := r.Backward(r.Forward(s)); got != s {
					t.Fatalf("rotor %s pos %d: Backward(Forward(%d)) = %d", spec.Name, pos, s, got)
				}
			}
		}
	}
}

func TestRotor_RotateReportsNotch(t *testing.T) {
	r, err := enigma.NewRotor(domain.RotorSpec{Name: "I", Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Notch: "Q"})
	if err != nil {
		t.Fatalf("NewRotor: %v", err)
	}
	r.SetPosition(15) // P
	if !r.Rotate() {
		t.Fatal("expected Rotate onto Q to report the notch")
	}
	if r.Rotate() {
		t.Fatal("expected Rotate off Q not to report the notch")
	}
	r.SetPosition(25)
	r.Rotate()
	if r.Position() != 0 {
		t.Fatalf("position after Z = %d, want 0", r.Position())
	}
}

func TestRotor_InvalidSpecs(t *testing.T) {
	cases := []struct {
		name string
		spec domain.RotorSpec
	}{
		{"short", domain.RotorSpec{Name: "x", Wiring: "ABC", Notch: "A"}},
		{"repeat", domain.RotorSpec{Name: "x", Wiring: "AACDEFGHIJKLMNOPQRSTUVWXYZ", Notch: "A"}},
		{"digit", domain.RotorSpec{Name: "x", Wiring: "1BCDEFGHIJKLMNOPQRSTUVWXYZ", Notch: "A"}},
		{"no notch", domain.RotorSpec{Name: "x", Wiring: enigma.Alphabet}},
		{"long notch", domain.RotorSpec{Name: "x", Wiring: enigma.Alphabet, Notch: "AB"}},
		{"ring", domain.RotorSpec{Name: "x", Wiring: enigma.Alphabet, Notch: "A", RingSetting: 26}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enigma.NewRotor(tc.spec)
			if !errors.Is(err, domain.ErrInvalidWiring) {
				t.Fatalf("err = %v, want ErrInvalidWiring", err)
			}
		})
	}
}

func TestReflector_Validation(t *testing.T) {
	if _, err := enigma.NewReflector(domain.ReflectorSpec{Name: "B", Wiring: "YRUHQSLDPXNGOKMIEBFZCWVJAT"}); err != nil {
		t.Fatalf("reflector B: %v", err)
	}
	bad := []string{
		enigma.Alphabet,              // every letter fixed
		"BCDEFGHIJKLMNOPQRSTUVWXYZA", // permutation, not an involution
		"YRUHQSLDPXNGOKMIEBFZCWVJ",   // too short
	}
	for _, w := range bad {
		if _, err := enigma.NewReflector(domain.ReflectorSpec{Name: "bad", Wiring: w}); !errors.Is(err, domain.ErrInvalidWiring) {
			t.Fatalf("wiring %q: err = %v, want ErrInvalidWiring", w, err)
		}
	}
}

func TestPlugboard_Validation(t *testing.T) {
	ok := []map[string]string{
		{},
		{"A": "B", "B": "A"},
		{"a": "b", "B": "A"},
		{"C": "C"},
	}
	for _, conn := range ok {
		if _, err := enigma.NewPlugboard(domain.PlugboardSpec{Name: "p", Connections: conn}); err != nil {
			t.Fatalf("connections %v: %v", conn, err)
		}
	}
	bad := []map[string]string{
		{"A": "B", "B": "C"},
		{"A": "B"},
		{"A": "1"},
		{"AB": "C"},
	}
	for _, conn := range bad {
		if _, err := enigma.NewPlugboard(domain.PlugboardSpec{Name: "p", Connections: conn}); !errors.Is(err, domain.ErrInvalidPlugboard) {
			t.Fatalf("connections %v: err = %v, want ErrInvalidPlugboard", conn, err)
		}
	}
}

func TestPlugboard_PairsSorted(t *testing.T) {
	pb, err := enigma.NewPlugboard(domain.PlugboardFromPairs("p", []string{"ZQ", "BA"}))
	if err != nil {
		t.Fatalf("NewPlugboard: %v", err)
	}
	got := strings.Join(pb.Pairs(), " ")
	if got != "AB QZ" {
		t.Fatalf("Pairs = %q, want %q", got, "AB QZ")
	}
}

func TestPlugboard_FromMalformedPairs(t *testing.T) {
	for _, pairs := range [][]string{{"A"}, {"ABC"}, {""}, {"AB", "C"}, {"éA"}} {
		if _, err := enigma.NewPlugboard(domain.PlugboardFromPairs("p", pairs)); !errors.Is(err, domain.ErrInvalidPlugboard) {
			t.Fatalf("pairs %q: err = %v, want ErrInvalidPlugboard", pairs, err)
		}
	}
	pb, err := enigma.NewPlugboard(domain.PlugboardFromPairs("p", []string{"ab"}))
	if err != nil {
		t.Fatalf("NewPlugboard: %v", err)
	}
	if got := strings.Join(pb.Pairs(), " "); got != "AB" {
		t.Fatalf("Pairs = %q, want %q", got, "AB")
	}
}

func TestMachine_KnownVector(t *testing.T) {
	m := newDefault(t)
	if got := m.ProcessText("AAAAA"); got != "BDZGO" {
		t.Fatalf("AAAAA -> %q, want BDZGO", got)
	}
	if got := m.Positions(); got != "AAF" {
		t.Fatalf("positions = %q, want AAF", got)
	}
}

func TestMachine_RoundTrip(t *testing.T) {
	m := newDefault(t)
	if err := m.LoadPlugboard(domain.PlugboardFromPairs("p", []string{"AB", "CD", "EF"})); err != nil {
		t.Fatalf("LoadPlugboard: %v", err)
	}
	texts := []string{"HELLO WORLD", "hello, world!", strings.Repeat("THEQUICKBROWNFOX", 50)}
	for _, text := range texts {
		if err := m.SetRotorPositions("MCK"); err != nil {
			t.Fatalf("SetRotorPositions: %v", err)
		}
		ct := m.ProcessText(text)
		if err := m.SetRotorPositions("MCK"); err != nil {
			t.Fatalf("SetRotorPositions: %v", err)
		}
		if got := m.ProcessText(ct); got != strings.ToUpper(text) {
			t.Fatalf("round trip of %q = %q", text, got)
		}
	}
}

func TestMachine_NeverMapsLetterToItself(t *testing.T) {
	m := newDefault(t)
	in := strings.Repeat(enigma.Alphabet, 40)
	out := m.ProcessText(in)
	for i := range in {
		if in[i] == out[i] {
			t.Fatalf("letter %c at %d encrypted to itself", in[i], i)
		}
	}
}

func TestMachine_NonLettersPassThroughWithoutStepping(t *testing.T) {
	m := newDefault(t)
	if got := m.ProcessText("! 1?é"); got != "! 1?é" {
		t.Fatalf("got %q", got)
	}
	if m.Positions() != "AAA" {
		t.Fatalf("positions moved to %q", m.Positions())
	}
}

func TestMachine_Stepping(t *testing.T) {
	cases := []struct {
		start string
		n     int
		want  string
	}{
		{"AAA", 1, "AAB"},
		{"AAV", 1, "ABW"}, // right at notch V turns the middle
		{"AEA", 1, "BFB"}, // middle at notch E turns itself and the left
		{"ADU", 3, "BFX"}, // double step
		{"ZZZ", 1, "ZZA"}, // right wraps without turning the middle
	}
	for _, tc := range cases {
		t.Run(tc.start, func(t *testing.T) {
			m := newDefault(t)
			if err := m.SetRotorPositions(tc.start); err != nil {
				t.Fatalf("SetRotorPositions: %v", err)
			}
			m.ProcessText(strings.Repeat("A", tc.n))
			if got := m.Positions(); got != tc.want {
				t.Fatalf("after %d from %s: %s, want %s", tc.n, tc.start, got, tc.want)
			}
		})
	}
}

func TestMachine_FewerThanThreeRotors(t *testing.T) {
	cat := domain.DefaultCatalog()
	m, err := enigma.New(cat.Rotors[1:3], cat.Reflectors[0], cat.Plugboards[0])
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.SetRotorPositions("EV"); err != nil {
		t.Fatalf("SetRotorPositions: %v", err)
	}
	m.ProcessText("AA")
	if got := m.Positions(); got != "EX" {
		t.Fatalf("positions = %q, want EX", got)
	}

	single, err := enigma.New(cat.Rotors[:1], cat.Reflectors[0], cat.Plugboards[0])
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ct := single.ProcessText("ATTACKATDAWN")
	if err := single.SetRotorPositions("A"); err != nil {
		t.Fatalf("SetRotorPositions: %v", err)
	}
	if got := single.ProcessText(ct); got != "ATTACKATDAWN" {
		t.Fatalf("single rotor round trip = %q", got)
	}
}

func TestMachine_MoreThanThreeRotors(t *testing.T) {
	cat := domain.DefaultCatalog()
	m, err := enigma.New(cat.Rotors[:4], cat.Reflectors[0], cat.Plugboards[0])
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// The cascade runs on II, III and IV; rotor I never moves.
	if err := m.SetRotorPositions("QAEA"); err != nil {
		t.Fatalf("SetRotorPositions: %v", err)
	}
	m.ProcessText("A")
	if got := m.Positions(); got != "QAEB" {
		t.Fatalf("positions = %q, want QAEB", got)
	}
	if err := m.SetRotorPositions("QAVA"); err != nil {
		t.Fatalf("SetRotorPositions: %v", err)
	}
	m.ProcessText("A")
	if got := m.Positions(); got != "QBWB" {
		t.Fatalf("positions = %q, want QBWB", got)
	}
}

func TestMachine_SetRotorPositions(t *testing.T) {
	m := newDefault(t)
	if err := m.SetRotorPositions("xyz"); err != nil {
		t.Fatalf("lowercase: %v", err)
	}
	if m.Positions() != "XYZ" {
		t.Fatalf("positions = %q", m.Positions())
	}
	if err := m.SetRotorPositions("B"); err != nil {
		t.Fatalf("prefix: %v", err)
	}
	if m.Positions() != "BYZ" {
		t.Fatalf("prefix positions = %q, want BYZ", m.Positions())
	}
	if err := m.SetRotorPositions("CDEFG"); err != nil {
		t.Fatalf("extra letters: %v", err)
	}
	if m.Positions() != "CDE" {
		t.Fatalf("extra positions = %q, want CDE", m.Positions())
	}

	err := m.SetRotorPositions("K1L")
	if !errors.Is(err, domain.ErrMalformedPosition) {
		t.Fatalf("err = %v, want ErrMalformedPosition", err)
	}
	if m.Positions() != "CDE" {
		t.Fatalf("rejected call changed positions to %q", m.Positions())
	}
}

func TestMachine_LoadRotors(t *testing.T) {
	cat := domain.DefaultCatalog()
	m := newDefault(t)
	if err := m.LoadRotors(cat.Rotors, []int{5, 4}); err != nil {
		t.Fatalf("LoadRotors: %v", err)
	}
	if m.Rotors() != 2 || m.Positions() != "AA" {
		t.Fatalf("rotors = %d positions = %q", m.Rotors(), m.Positions())
	}
	s := m.Settings()
	if s.Rotors[0].Spec.Name != "V" || s.Rotors[1].Spec.Name != "IV" {
		t.Fatalf("rotor order = %s,%s", s.Rotors[0].Spec.Name, s.Rotors[1].Spec.Name)
	}

	for _, idx := range [][]int{{0}, {6}, {}} {
		if err := m.LoadRotors(cat.Rotors, idx); !errors.Is(err, domain.ErrConfigurationNotFound) {
			t.Fatalf("indices %v: err = %v, want ErrConfigurationNotFound", idx, err)
		}
	}
	if m.Rotors() != 2 {
		t.Fatal("failed LoadRotors replaced the stack")
	}
}

func TestMachine_NewRejectsEmptyRotorSet(t *testing.T) {
	cat := domain.DefaultCatalog()
	_, err := enigma.New(nil, cat.Reflectors[0], cat.Plugboards[0])
	if !errors.Is(err, domain.ErrConfigurationNotFound) {
		t.Fatalf("err = %v, want ErrConfigurationNotFound", err)
	}
}

func TestMachine_SetReflector(t *testing.T) {
	m := newDefault(t)
	b := m.ProcessText("AAAAA")
	if err := m.SetReflector(domain.DefaultCatalog().Reflectors[1]); err != nil {
		t.Fatalf("SetReflector: %v", err)
	}
	if err := m.SetRotorPositions("AAA"); err != nil {
		t.Fatalf("SetRotorPositions: %v", err)
	}
	if c := m.ProcessText("AAAAA"); c == b {
		t.Fatalf("reflector C produced the same output as B: %q", c)
	}
	if err := m.SetReflector(domain.ReflectorSpec{Name: "bad", Wiring: enigma.Alphabet}); err == nil {
		t.Fatal("expected invalid reflector to be rejected")
	}
	if m.Settings().Reflector.Name != "C" {
		t.Fatal("rejected reflector replaced the current one")
	}
}

func TestMachine_CloneIsIndependent(t *testing.T) {
	m := newDefault(t)
	c := m.Clone()
	c.ProcessText("HELLO")
	if m.Positions() != "AAA" {
		t.Fatalf("clone advanced original to %q", m.Positions())
	}
	if got := m.ProcessText("HELLO"); got != newDefault(t).ProcessText("HELLO") {
		t.Fatalf("original output changed: %q", got)
	}
}

func TestSettings_KeySheet(t *testing.T) {
	m := newDefault(t)
	if err := m.SetRotorPositions("QEV"); err != nil {
		t.Fatalf("SetRotorPositions: %v", err)
	}
	ks := m.Settings().KeySheet("daily")
	if ks.Name != "daily" || ks.Positions != "QEV" || len(ks.Rotors) != 3 || ks.Reflector.Name != "B" {
		t.Fatalf("unexpected key sheet %+v", ks)
	}
}
