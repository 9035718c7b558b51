package keysheet

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode"

	"enigmasim/internal/crypto"
	"enigmasim/internal/domain"
	"enigmasim/internal/services/cipher"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	// generatedRotors is the number of catalog rotors placed in a generated sheet.
	generatedRotors = 3
)

var (
	// ErrWeakPassphrase is returned when the sealing passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrNoRelay is returned by publish and fetch when no relay is configured.
	ErrNoRelay = errors.New("no relay configured")
)

// CatalogSource supplies the catalog that random sheets are drawn from.
type CatalogSource interface {
	Catalog() (domain.Catalog, error)
}

// Service creates key sheets, keeps them sealed in a store and exchanges the
// sealed blobs with a relay.
type Service struct {
	store   domain.KeySheetStore
	catalog CatalogSource
	relay   domain.RelayClient
	rand    io.Reader
	now     func() time.Time
	argon   crypto.Argon2Params
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRelay sets the relay used by PublishKeySheet and FetchKeySheet.
func WithRelay(rc domain.RelayClient) Option { return func(s *Service) { s.relay = rc } }

// WithRandom replaces crypto/rand as the source for generated sheets.
func WithRandom(r io.Reader) Option { return func(s *Service) { s.rand = r } }

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithArgon2Params tunes password derivation.
func WithArgon2Params(p crypto.Argon2Params) Option { return func(s *Service) { s.argon = p } }

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a key sheet service backed by store, drawing random sheets
// from catalog.
func New(store domain.KeySheetStore, catalog CatalogSource, opts ...Option) *Service {
	s := &Service{
		store:   store,
		catalog: catalog,
		rand:    rand.Reader,
		now:     time.Now,
		argon:   crypto.DefaultArgon2Params(),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateKeySheet draws a random sheet from the catalog: three distinct
// rotors, a reflector, ten plugboard cables and start positions. The sheet is
// returned, not stored.
func (s *Service) GenerateKeySheet(name domain.KeySheetName) (domain.KeySheet, error) {
	if err := name.Validate(); err != nil {
		return domain.KeySheet{}, err
	}
	cat, err := s.catalog.Catalog()
	if err != nil {
		return domain.KeySheet{}, err
	}
	if len(cat.Rotors) == 0 || len(cat.Reflectors) == 0 {
		return domain.KeySheet{}, &domain.ConfigError{
			Kind:      domain.ErrConfigurationNotFound,
			Component: "catalog",
			Reason:    "need at least one rotor and one reflector",
		}
	}

	order, err := crypto.Perm(s.rand, len(cat.Rotors))
	if err != nil {
		return domain.KeySheet{}, err
	}
	n := min(generatedRotors, len(order))
	sheet := domain.KeySheet{Name: name, CreatedUTC: s.now().UTC().Unix()}
	for _, i := range order[:n] {
		sheet.Rotors = append(sheet.Rotors, cat.Rotors[i])
	}

	ri, err := crypto.Intn(s.rand, len(cat.Reflectors))
	if err != nil {
		return domain.KeySheet{}, err
	}
	sheet.Reflector = cat.Reflectors[ri]

	pairs, err := crypto.RandomPairs(s.rand, crypto.PlugboardPairs)
	if err != nil {
		return domain.KeySheet{}, err
	}
	sheet.Plugboard = domain.PlugboardFromPairs(string(name), pairs)

	if sheet.Positions, err = crypto.RandomLetters(s.rand, n); err != nil {
		return domain.KeySheet{}, err
	}
	s.log.Debug("key sheet generated", "name", name, "fingerprint", crypto.Fingerprint(sheet))
	return sheet, nil
}

// DeriveKeySheet derives a sheet from password. Equal passwords give equal
// settings on every installation; only the timestamp differs.
func (s *Service) DeriveKeySheet(name domain.KeySheetName, password string) (domain.KeySheet, error) {
	if err := name.Validate(); err != nil {
		return domain.KeySheet{}, err
	}
	sheet, err := crypto.DeriveKeySheet(name, password, s.argon)
	if err != nil {
		return domain.KeySheet{}, err
	}
	sheet.CreatedUTC = s.now().UTC().Unix()
	return sheet, nil
}

// SaveKeySheet checks that sheet builds a machine, then seals it under
// passphrase.
func (s *Service) SaveKeySheet(passphrase string, sheet domain.KeySheet) error {
	if !isSecurePassphrase(passphrase) {
		return ErrWeakPassphrase
	}
	if _, err := cipher.MachineFromSheet(sheet); err != nil {
		return err
	}
	if err := s.store.SaveKeySheet(passphrase, sheet); err != nil {
		return err
	}
	s.log.Info("key sheet saved", "name", sheet.Name, "fingerprint", crypto.Fingerprint(sheet))
	return nil
}

// LoadKeySheet opens a stored sheet.
func (s *Service) LoadKeySheet(passphrase string, name domain.KeySheetName) (domain.KeySheet, error) {
	sheet, ok, err := s.store.LoadKeySheet(passphrase, name)
	if err != nil {
		return domain.KeySheet{}, err
	}
	if !ok {
		return domain.KeySheet{}, notFound(name)
	}
	return sheet, nil
}

// ListKeySheets returns the stored sheet names.
func (s *Service) ListKeySheets() ([]domain.KeySheetName, error) {
	return s.store.ListKeySheets()
}

// FingerprintKeySheet returns a short fingerprint of the sheet's settings.
func (s *Service) FingerprintKeySheet(sheet domain.KeySheet) domain.Fingerprint {
	return crypto.Fingerprint(sheet)
}

// PublishKeySheet uploads the stored sealed blob. The relay never sees the
// passphrase or the plaintext.
func (s *Service) PublishKeySheet(ctx context.Context, name domain.KeySheetName) error {
	if s.relay == nil {
		return ErrNoRelay
	}
	blob, ok, err := s.store.LoadSealedKeySheet(name)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(name)
	}
	if err := s.relay.PublishKeySheet(ctx, name, blob); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	s.log.Info("key sheet published", "name", name, "bytes", len(blob))
	return nil
}

// FetchKeySheet downloads a sealed sheet, opens it with passphrase to make
// sure it is usable, and stores the sealed blob locally.
func (s *Service) FetchKeySheet(ctx context.Context, passphrase string, name domain.KeySheetName) (domain.KeySheet, error) {
	if s.relay == nil {
		return domain.KeySheet{}, ErrNoRelay
	}
	if err := name.Validate(); err != nil {
		return domain.KeySheet{}, err
	}
	blob, err := s.relay.FetchKeySheet(ctx, name)
	if err != nil {
		return domain.KeySheet{}, fmt.Errorf("fetch %s: %w", name, err)
	}
	raw, err := crypto.Open(passphrase, blob)
	if err != nil {
		return domain.KeySheet{}, fmt.Errorf("open fetched key sheet %s: %w", name, err)
	}
	var sheet domain.KeySheet
	if err := json.Unmarshal(raw, &sheet); err != nil {
		return domain.KeySheet{}, fmt.Errorf("decode fetched key sheet %s: %w", name, err)
	}
	if sheet.Name != name {
		return domain.KeySheet{}, fmt.Errorf("relay returned sheet %q for %q", sheet.Name, name)
	}
	if _, err := cipher.MachineFromSheet(sheet); err != nil {
		return domain.KeySheet{}, err
	}
	if err := s.store.SaveSealedKeySheet(name, blob); err != nil {
		return domain.KeySheet{}, err
	}
	s.log.Info("key sheet fetched", "name", name, "fingerprint", crypto.Fingerprint(sheet))
	return sheet, nil
}

func notFound(name domain.KeySheetName) error {
	return &domain.ConfigError{Kind: domain.ErrConfigurationNotFound, Component: "key sheet", Name: string(name)}
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.KeySheetService.
var _ domain.KeySheetService = (*Service)(nil)
