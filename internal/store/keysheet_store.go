package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"enigmasim/internal/crypto"
	"enigmasim/internal/domain"
)

// sealedExt is the file extension of a sealed key sheet.
const sealedExt = ".sheet"

// KeySheetFileStore keeps one sealed file per key sheet in a directory.
type KeySheetFileStore struct {
	dir    string
	params crypto.ScryptParams
	mu     sync.Mutex
}

// NewKeySheetFileStore returns a KeySheetFileStore rooted at dir that seals
// with the default scrypt parameters.
func NewKeySheetFileStore(dir string) *KeySheetFileStore {
	return &KeySheetFileStore{dir: dir, params: crypto.DefaultScryptParams()}
}

// WithScryptParams returns the store with different sealing parameters.
// Already sealed files keep the parameters recorded in their envelope.
func (s *KeySheetFileStore) WithScryptParams(p crypto.ScryptParams) *KeySheetFileStore {
	s.params = p
	return s
}

func (s *KeySheetFileStore) path(name domain.KeySheetName) (string, error) {
	if err := name.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, string(name)+sealedExt), nil
}

// SaveKeySheet seals sheet under passphrase and writes it to disk.
func (s *KeySheetFileStore) SaveKeySheet(passphrase string, sheet domain.KeySheet) error {
	path, err := s.path(sheet.Name)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(sheet)
	if err != nil {
		return err
	}
	blob, err := crypto.Seal(passphrase, raw, s.params)
	if err != nil {
		return fmt.Errorf("seal key sheet %s: %w", sheet.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFile(path, blob, 0o600)
}

// LoadKeySheet reads and opens a sheet. A missing sheet returns ok=false;
// a wrong passphrase returns crypto.ErrWrongPassphrase.
func (s *KeySheetFileStore) LoadKeySheet(passphrase string, name domain.KeySheetName) (domain.KeySheet, bool, error) {
	blob, ok, err := s.LoadSealedKeySheet(name)
	if err != nil || !ok {
		return domain.KeySheet{}, ok, err
	}
	raw, err := crypto.Open(passphrase, blob)
	if err != nil {
		return domain.KeySheet{}, false, fmt.Errorf("open key sheet %s: %w", name, err)
	}
	var sheet domain.KeySheet
	if err := json.Unmarshal(raw, &sheet); err != nil {
		return domain.KeySheet{}, false, fmt.Errorf("decode key sheet %s: %w", name, err)
	}
	if sheet.Name != name {
		return domain.KeySheet{}, false, fmt.Errorf("key sheet file %s holds sheet %q", name, sheet.Name)
	}
	return sheet, true, nil
}

// ListKeySheets returns the names of stored sheets, sorted.
func (s *KeySheetFileStore) ListKeySheets() ([]domain.KeySheetName, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []domain.KeySheetName
	for _, e := range entries {
		base, ok := strings.CutSuffix(e.Name(), sealedExt)
		if !ok || e.IsDir() {
			continue
		}
		if n := domain.KeySheetName(base); n.Validate() == nil {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// SaveSealedKeySheet stores a blob that is already sealed, such as one
// fetched from the relay. The blob must at least be a sealed envelope.
func (s *KeySheetFileStore) SaveSealedKeySheet(name domain.KeySheetName, blob []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(blob, &fields); err != nil {
		return fmt.Errorf("%w: %v", crypto.ErrMalformedEnvelope, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFile(path, blob, 0o600)
}

// LoadSealedKeySheet returns the sealed blob without opening it.
func (s *KeySheetFileStore) LoadSealedKeySheet(name domain.KeySheetName) ([]byte, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := readFile(path)
	if err != nil {
		return nil, false, err
	}
	return b, b != nil, nil
}

// Compile-time assertion that KeySheetFileStore implements domain.KeySheetStore.
var _ domain.KeySheetStore = (*KeySheetFileStore)(nil)
