package types

import (
	"errors"
	"fmt"
)

// MaxKeySheetNameLen bounds key sheet names.
const MaxKeySheetNameLen = 64

// ErrInvalidKeySheetName reports a name outside [A-Za-z0-9_-]{1,64}.
var ErrInvalidKeySheetName = errors.New("invalid key sheet name")

// KeySheetName identifies a stored or published key sheet. Valid names are
// safe to use as file names and URL path segments.
type KeySheetName string

// String returns the string form of the key sheet name.
func (n KeySheetName) String() string { return string(n) }

// Validate checks that n is 1 to 64 ASCII letters, digits, '_' or '-'.
func (n KeySheetName) Validate() error {
	if len(n) == 0 || len(n) > MaxKeySheetNameLen {
		return fmt.Errorf("%w: %q must be 1-%d characters", ErrInvalidKeySheetName, string(n), MaxKeySheetNameLen)
	}
	for i := 0; i < len(n); i++ {
		c := n[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidKeySheetName, string(n), rune(c))
		}
	}
	return nil
}

// Fingerprint is a short identifier for machine settings presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// CodecMode selects whether text is routed through the symbol codec.
type CodecMode int

const (
	// CodecRaw feeds text straight into the machine.
	CodecRaw CodecMode = iota
	// CodecAuto encodes plaintext before enciphering, or decodes after
	// deciphering, picking the direction from the input.
	CodecAuto
)

// String returns the string form of the mode.
func (m CodecMode) String() string {
	switch m {
	case CodecRaw:
		return "raw"
	case CodecAuto:
		return "codec"
	default:
		return "unknown"
	}
}

// CatalogFormat is the on-disk encoding of catalog files.
type CatalogFormat string

const (
	CatalogJSON CatalogFormat = "json"
	CatalogYAML CatalogFormat = "yaml"
)

// ParseCatalogFormat converts a flag value into a CatalogFormat.
func ParseCatalogFormat(s string) (CatalogFormat, error) {
	switch s {
	case "json", "JSON":
		return CatalogJSON, nil
	case "yaml", "YAML", "yml":
		return CatalogYAML, nil
	default:
		return "", &ConfigError{Kind: ErrConfigurationNotFound, Component: "catalog format", Name: s, Reason: "want json or yaml"}
	}
}
