package cipher

import (
	"go.uber.org/multierr"

	"enigmasim/internal/domain"
	"enigmasim/internal/protocol/enigma"
)

// CheckCatalog validates every spec in cat and reports all problems at once.
// Reflector and plugboard names must be unique since they are selected by
// name. The combined error matches each underlying kind with errors.Is.
func CheckCatalog(cat domain.Catalog) error {
	var err error
	if len(cat.Rotors) == 0 {
		err = multierr.Append(err, &domain.ConfigError{
			Kind:      domain.ErrConfigurationNotFound,
			Component: "rotor set",
			Reason:    "catalog has no rotors",
		})
	}
	for _, spec := range cat.Rotors {
		_, rerr := enigma.NewRotor(spec)
		err = multierr.Append(err, rerr)
	}

	seen := make(map[string]bool)
	for _, spec := range cat.Reflectors {
		_, rerr := enigma.NewReflector(spec)
		err = multierr.Append(err, rerr)
		err = multierr.Append(err, duplicate(seen, domain.ErrInvalidWiring, "reflector", spec.Name))
	}

	seen = make(map[string]bool)
	for _, spec := range cat.Plugboards {
		_, perr := enigma.NewPlugboard(spec)
		err = multierr.Append(err, perr)
		err = multierr.Append(err, duplicate(seen, domain.ErrInvalidPlugboard, "plugboard", spec.Name))
	}
	return err
}

func duplicate(seen map[string]bool, kind error, component, name string) error {
	if !seen[name] {
		seen[name] = true
		return nil
	}
	return &domain.ConfigError{
		Kind:      kind,
		Component: component,
		Name:      name,
		Reason:    "name used more than once",
	}
}

// Check loads the catalog and validates it with CheckCatalog.
func (s *Service) Check() (domain.Catalog, error) {
	cat, err := s.Catalog()
	if err != nil {
		return domain.Catalog{}, err
	}
	return cat, CheckCatalog(cat)
}
