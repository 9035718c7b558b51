package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"

	"enigmasim/internal/domain"
	"enigmasim/internal/util/memzero"
)

const (
	// DerivedRotors is the number of rotors in a derived key sheet.
	DerivedRotors = 3
	// PlugboardPairs is the number of plugboard cables in generated and
	// derived key sheets.
	PlugboardPairs = 10

	masterKeyBytes = 32
)

// deriveSalt is fixed so the sheet depends on the password alone.
var deriveSalt = []byte("enigmasim/keysheet/v1")

// ErrEmptyPassword is returned when deriving from an empty password.
var ErrEmptyPassword = errors.New("crypto: empty password")

// Argon2Params tunes the password stretch of DeriveKeySheet.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultArgon2Params is one pass over 64 MiB with four lanes.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4}
}

// DeriveKeySheet turns a password into a complete key sheet. The result is a
// pure function of password and params; name only labels it.
//
// Argon2id stretches the password into a master key. HKDF-SHA256 expands the
// master key into one labelled stream per component, and each stream drives
// unbiased shuffles: a wiring and notch per rotor, a fixed-point-free
// involution for the reflector, plugboard pairs and start positions.
func DeriveKeySheet(name domain.KeySheetName, password string, params Argon2Params) (domain.KeySheet, error) {
	if password == "" {
		return domain.KeySheet{}, ErrEmptyPassword
	}
	master := argon2.IDKey([]byte(password), deriveSalt, params.Time, params.Memory, params.Threads, masterKeyBytes)
	defer memzero.Zero(master)

	stream := func(label string) io.Reader {
		return hkdf.New(sha256.New, master, nil, []byte(label))
	}

	sheet := domain.KeySheet{Name: name}
	for i := 1; i <= DerivedRotors; i++ {
		spec, err := deriveRotor(stream(fmt.Sprintf("rotor-%d", i)), fmt.Sprintf("D%d", i))
		if err != nil {
			return domain.KeySheet{}, fmt.Errorf("derive rotor %d: %w", i, err)
		}
		sheet.Rotors = append(sheet.Rotors, spec)
	}

	refl, err := ReflectorWiring(stream("reflector"))
	if err != nil {
		return domain.KeySheet{}, fmt.Errorf("derive reflector: %w", err)
	}
	sheet.Reflector = domain.ReflectorSpec{Name: "D", Wiring: refl}

	pairs, err := RandomPairs(stream("plugboard"), PlugboardPairs)
	if err != nil {
		return domain.KeySheet{}, fmt.Errorf("derive plugboard: %w", err)
	}
	sheet.Plugboard = domain.PlugboardFromPairs("D", pairs)

	if sheet.Positions, err = RandomLetters(stream("positions"), DerivedRotors); err != nil {
		return domain.KeySheet{}, fmt.Errorf("derive positions: %w", err)
	}
	return sheet, nil
}

func deriveRotor(r io.Reader, name string) (domain.RotorSpec, error) {
	wiring, err := Perm(r, 26)
	if err != nil {
		return domain.RotorSpec{}, err
	}
	notch, err := RandomLetters(r, 1)
	if err != nil {
		return domain.RotorSpec{}, err
	}
	return domain.RotorSpec{Name: name, Wiring: Letters(wiring), Notch: notch}, nil
}

// ReflectorWiring draws a fixed-point-free involution of A–Z by pairing the
// letters of a shuffled alphabet.
func ReflectorWiring(r io.Reader) (string, error) {
	p, err := Perm(r, 26)
	if err != nil {
		return "", err
	}
	w := make([]int, 26)
	for i := 0; i < 26; i += 2 {
		w[p[i]], w[p[i+1]] = p[i+1], p[i]
	}
	return Letters(w), nil
}
