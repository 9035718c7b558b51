package cipher

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"enigmasim/internal/domain"
	"enigmasim/internal/protocol/enigma"
	"enigmasim/internal/protocol/symbols"
)

// Service builds machines from catalog selections or key sheets and runs
// text through them.
type Service struct {
	catalog       domain.CatalogStore
	allowDefaults bool
	codec         *symbols.Codec
	log           *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDefaults lets a missing catalog file fall back to the built-in
// collection. Malformed files are always an error.
func WithDefaults(allow bool) Option { return func(s *Service) { s.allowDefaults = allow } }

// WithLogger sets the logger handed to machines and used for fallback
// notices.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCodec replaces the built-in symbol codec.
func WithCodec(c *symbols.Codec) Option {
	return func(s *Service) {
		if c != nil {
			s.codec = c
		}
	}
}

// New returns a cipher service reading configuration from catalog. A nil
// catalog behaves like an empty directory.
func New(catalog domain.CatalogStore, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		codec:   symbols.Default(),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog loads the three collections. Each missing collection is replaced
// by its built-in default when defaults are allowed.
func (s *Service) Catalog() (domain.Catalog, error) {
	def := domain.DefaultCatalog()
	var (
		cat domain.Catalog
		err error
	)
	if cat.Rotors, err = loadOrDefault(s, "rotors", def.Rotors, func(c domain.CatalogStore) ([]domain.RotorSpec, error) {
		return c.LoadRotors()
	}); err != nil {
		return domain.Catalog{}, err
	}
	if cat.Reflectors, err = loadOrDefault(s, "reflectors", def.Reflectors, func(c domain.CatalogStore) ([]domain.ReflectorSpec, error) {
		return c.LoadReflectors()
	}); err != nil {
		return domain.Catalog{}, err
	}
	if cat.Plugboards, err = loadOrDefault(s, "plugboards", def.Plugboards, func(c domain.CatalogStore) ([]domain.PlugboardSpec, error) {
		return c.LoadPlugboards()
	}); err != nil {
		return domain.Catalog{}, err
	}
	return cat, nil
}

func loadOrDefault[T any](s *Service, what string, def []T, load func(domain.CatalogStore) ([]T, error)) ([]T, error) {
	var err error
	if s.catalog != nil {
		var out []T
		if out, err = load(s.catalog); err == nil {
			return out, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", what, err)
		}
	} else {
		err = fmt.Errorf("no catalog directory: %w", fs.ErrNotExist)
	}
	if !s.allowDefaults {
		return nil, fmt.Errorf("load %s: %w", what, err)
	}
	s.log.Info("catalog file missing, using built-in defaults", "collection", what)
	return def, nil
}

// Build resolves sel against the catalog and returns a machine at the
// selected positions. Empty selection fields pick the catalog defaults.
func (s *Service) Build(sel domain.Selection) (*enigma.Machine, error) {
	cat, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	indices := sel.RotorIndices
	if len(indices) == 0 {
		indices = cat.DefaultRotorIndices()
	}
	rotors := make([]domain.RotorSpec, 0, len(indices))
	for _, i := range indices {
		spec, err := cat.Rotor(i)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, spec)
	}
	refl, err := cat.Reflector(sel.Reflector)
	if err != nil {
		return nil, err
	}
	pb, err := cat.Plugboard(sel.Plugboard)
	if err != nil {
		return nil, err
	}

	m, err := enigma.New(rotors, refl, pb, enigma.WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	if err := m.SetRotorPositions(sel.Positions); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildFromSheet returns a machine configured exactly as sheet describes.
func (s *Service) BuildFromSheet(sheet domain.KeySheet) (*enigma.Machine, error) {
	return MachineFromSheet(sheet, enigma.WithLogger(s.log))
}

// MachineFromSheet builds a machine from a self-contained key sheet. It
// doubles as the validity check for sheets before they are stored.
func MachineFromSheet(sheet domain.KeySheet, opts ...enigma.Option) (*enigma.Machine, error) {
	m, err := enigma.New(sheet.Rotors, sheet.Reflector, sheet.Plugboard, opts...)
	if err != nil {
		return nil, fmt.Errorf("key sheet %s: %w", sheet.Name, err)
	}
	if err := m.SetRotorPositions(sheet.Positions); err != nil {
		return nil, fmt.Errorf("key sheet %s: %w", sheet.Name, err)
	}
	return m, nil
}

// Process runs text through m. In CodecRaw mode the machine sees the text as
// is. In CodecAuto mode text that is pure A–Z is deciphered and then
// decoded, anything else is encoded and then enciphered; afterwards the rotor
// positions are put back to where they were before the call.
func (s *Service) Process(m *enigma.Machine, text string, mode domain.CodecMode) string {
	if mode != domain.CodecAuto {
		return m.ProcessText(text)
	}

	start := m.Positions()
	var out string
	if symbols.IsCodeText(text) {
		out = s.codec.Decode(m.ProcessText(text))
	} else {
		out = m.ProcessText(s.codec.Encode(text))
	}
	// start came from Positions, so it is always well formed.
	_ = m.SetRotorPositions(start)
	return out
}

// RoundTrip processes text on a copy of m and replays the output from the
// same starting state. m itself is left untouched.
func (s *Service) RoundTrip(m *enigma.Machine, text string, mode domain.CodecMode) (output, replay string) {
	output = s.Process(m.Clone(), text, mode)
	replay = s.Process(m.Clone(), output, mode)
	return output, replay
}
