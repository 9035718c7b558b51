package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"enigmasim/internal/crypto"
	"enigmasim/internal/domain"
	"enigmasim/internal/protocol/enigma"
)

// positionsValue is a pflag.Value accepting rotor start letters.
type positionsValue string

func (p *positionsValue) String() string { return string(*p) }

func (p *positionsValue) Set(s string) error {
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return &domain.ConfigError{
				Kind:      domain.ErrMalformedPosition,
				Component: "positions",
				Name:      s,
				Reason:    fmt.Sprintf("%q is not a letter", r),
			}
		}
	}
	*p = positionsValue(strings.ToUpper(s))
	return nil
}

func (p *positionsValue) Type() string { return "letters" }

var _ pflag.Value = (*positionsValue)(nil)

// machineFlags selects how a command builds its machine: a stored key sheet,
// a password-derived sheet, or a catalog selection.
type machineFlags struct {
	rotors    []int
	reflector string
	plugboard string
	positions positionsValue
	sheet     string
	password  string
}

func (f *machineFlags) register(fs *pflag.FlagSet) {
	fs.IntSliceVar(&f.rotors, "rotors", nil, "catalog rotor indices, leftmost first (e.g. 1,2,3)")
	fs.StringVar(&f.reflector, "reflector", "", "reflector name (default: first in catalog)")
	fs.StringVar(&f.plugboard, "plugboard", "", `plugboard name (default "1")`)
	fs.Var(&f.positions, "positions", "rotor start letters, leftmost first (e.g. AAA)")
	fs.StringVar(&f.sheet, "sheet", "", "use a stored key sheet (needs -p)")
	fs.StringVar(&f.password, "password", "", "derive all settings from a password")
}

// build returns the machine described by the flags. --positions overrides
// the start positions of a key sheet.
func (f *machineFlags) build() (*enigma.Machine, error) {
	var sheet *domain.KeySheet
	switch {
	case f.sheet != "" && f.password != "":
		return nil, fmt.Errorf("--sheet and --password are mutually exclusive")
	case f.sheet != "":
		if passphrase == "" {
			return nil, fmt.Errorf("passphrase required (-p) to open key sheet %s", f.sheet)
		}
		s, err := wire.Sheets.LoadKeySheet(passphrase, domain.KeySheetName(f.sheet))
		if err != nil {
			return nil, err
		}
		sheet = &s
	case f.password != "":
		s, err := wire.Sheets.DeriveKeySheet("derived", f.password)
		if err != nil {
			return nil, err
		}
		sheet = &s
	}

	if sheet == nil {
		return wire.Cipher.Build(domain.Selection{
			RotorIndices: f.rotors,
			Reflector:    f.reflector,
			Plugboard:    f.plugboard,
			Positions:    string(f.positions),
		})
	}
	m, err := wire.Cipher.BuildFromSheet(*sheet)
	if err != nil {
		return nil, err
	}
	if f.positions != "" {
		if err := m.SetRotorPositions(string(f.positions)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// printSettings writes a human-readable report of s.
func printSettings(w io.Writer, s enigma.Settings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROTOR\tNAME\tWIRING\tNOTCH\tRING\tPOSITION")
	for i, r := range s.Rotors {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%c\n", i+1, r.Spec.Name, r.Spec.Wiring, r.Spec.Notch, r.Spec.RingSetting, r.Position)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pairs := "none"
	if len(s.Pairs) > 0 {
		pairs = strings.Join(s.Pairs, " ")
	}
	_, err := fmt.Fprintf(w,
		"Reflector:   %s %s\nPlugboard:   %s (%s)\nPositions:   %s\nFingerprint: %s\n",
		s.Reflector.Name, s.Reflector.Wiring,
		s.Plugboard.Name, pairs,
		s.Positions,
		crypto.Fingerprint(s.KeySheet("")),
	)
	return err
}
