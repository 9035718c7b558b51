package types

import "errors"

// Error kinds shared by the cipher core and the configuration collaborators.
// Match them with errors.Is; the concrete error is usually a *ConfigError.
var (
	// ErrInvalidWiring reports a rotor or reflector wiring that is not a
	// permutation, or a reflector that is not a fixed-point-free involution.
	ErrInvalidWiring = errors.New("invalid wiring")

	// ErrInvalidPlugboard reports plugboard connections that are not symmetric.
	ErrInvalidPlugboard = errors.New("invalid plugboard")

	// ErrConfigurationNotFound reports a rotor index, reflector name or
	// plugboard name that is absent from the supplied specs.
	ErrConfigurationNotFound = errors.New("configuration not found")

	// ErrMalformedPosition reports a rotor position string containing
	// non-letters.
	ErrMalformedPosition = errors.New("malformed rotor position")
)

// ConfigError describes why a piece of machine configuration was rejected.
//
// Kind is one of the sentinel error kinds above, Component names the part
// being configured ("rotor", "reflector", "plugboard", "positions") and Name
// identifies the offending spec when it has one.
type ConfigError struct {
	Kind      error
	Component string
	Name      string
	Reason    string
}

// Error formats as `enigma: invalid rotor "I": wiring repeats letter A`.
func (e *ConfigError) Error() string {
	msg := "enigma: "
	switch e.Kind {
	case ErrConfigurationNotFound:
		msg += "unknown " + e.Component
	default:
		msg += "invalid " + e.Component
	}
	if e.Name != "" {
		msg += ` "` + e.Name + `"`
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns the error kind so errors.Is works against the sentinels.
func (e *ConfigError) Unwrap() error { return e.Kind }
