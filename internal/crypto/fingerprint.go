package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"enigmasim/internal/domain"
)

// canonicalSheet is the part of a key sheet that affects the cipher, in a
// stable form. Names and timestamps are left out.
type canonicalSheet struct {
	Rotors    [][3]string `json:"r"`
	Reflector string      `json:"f"`
	Plugboard []string    `json:"p"`
	Positions string      `json:"s"`
}

// Fingerprint returns a short hex fingerprint of the settings in sheet.
//
// It hashes the canonical settings with SHA-256 and truncates to 10 bytes
// (20 hex chars). Two sheets with the same fingerprint encipher identically.
func Fingerprint(sheet domain.KeySheet) domain.Fingerprint {
	c := canonicalSheet{
		Reflector: strings.ToUpper(sheet.Reflector.Wiring),
		Positions: strings.ToUpper(sheet.Positions),
	}
	for _, r := range sheet.Rotors {
		c.Rotors = append(c.Rotors, [3]string{
			strings.ToUpper(r.Wiring),
			strings.ToUpper(r.Notch),
			string(rune('A' + r.RingSetting)),
		})
	}
	for k, v := range sheet.Plugboard.Connections {
		k, v = strings.ToUpper(k), strings.ToUpper(v)
		if k < v {
			c.Plugboard = append(c.Plugboard, k+v)
		}
	}
	sort.Strings(c.Plugboard)

	raw, _ := json.Marshal(c) // only strings; cannot fail
	sum := sha256.Sum256(raw)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
