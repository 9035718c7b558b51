package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"enigmasim/internal/domain"
)

// Catalog file base names; each may end in .json, .yaml or .yml.
const (
	rotorFile     = "rotor"
	reflectorFile = "reflector"
	plugboardFile = "plugboard"
)

// catalogExts is the lookup order; JSON wins when several exist.
var catalogExts = []string{".json", ".yaml", ".yml"}

type rotorFileDoc struct {
	Rotors []domain.RotorSpec `json:"rotors" yaml:"rotors"`
}

type reflectorFileDoc struct {
	Reflectors []domain.ReflectorSpec `json:"reflectors" yaml:"reflectors"`
}

type plugboardFileDoc struct {
	Plugboards []domain.PlugboardSpec `json:"plugboards" yaml:"plugboards"`
}

// CatalogFileStore reads and writes the three catalog files in one directory.
type CatalogFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewCatalogFileStore returns a CatalogFileStore rooted at dir.
func NewCatalogFileStore(dir string) *CatalogFileStore {
	return &CatalogFileStore{dir: dir}
}

// Dir returns the catalog directory.
func (s *CatalogFileStore) Dir() string { return s.dir }

// LoadRotors reads the rotor collection.
func (s *CatalogFileStore) LoadRotors() ([]domain.RotorSpec, error) {
	var doc rotorFileDoc
	if err := s.load(rotorFile, &doc); err != nil {
		return nil, err
	}
	return doc.Rotors, nil
}

// LoadReflectors reads the reflector collection.
func (s *CatalogFileStore) LoadReflectors() ([]domain.ReflectorSpec, error) {
	var doc reflectorFileDoc
	if err := s.load(reflectorFile, &doc); err != nil {
		return nil, err
	}
	return doc.Reflectors, nil
}

// LoadPlugboards reads the plugboard collection.
func (s *CatalogFileStore) LoadPlugboards() ([]domain.PlugboardSpec, error) {
	var doc plugboardFileDoc
	if err := s.load(plugboardFile, &doc); err != nil {
		return nil, err
	}
	return doc.Plugboards, nil
}

// load decodes the first existing file for base. When none exists the error
// wraps fs.ErrNotExist.
func (s *CatalogFileStore) load(base string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ext := range catalogExts {
		path := filepath.Join(s.dir, base+ext)
		b, err := readFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if b == nil {
			continue
		}
		return decodeFile(path, b, out)
	}
	return fmt.Errorf("%s catalog in %s: %w", base, s.dir, fs.ErrNotExist)
}

// SaveCatalog writes the three collections in format, replacing any files of
// the other format so the written set is the one that loads.
func (s *CatalogFileStore) SaveCatalog(catalog domain.Catalog, format domain.CatalogFormat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		ext   string
		write func(string, any, os.FileMode) error
	)
	switch format {
	case domain.CatalogJSON:
		ext, write = ".json", writeJSON
	case domain.CatalogYAML:
		ext, write = ".yaml", writeYAML
	default:
		return fmt.Errorf("unsupported catalog format %q", format)
	}

	docs := []struct {
		base string
		doc  any
	}{
		{rotorFile, rotorFileDoc{Rotors: catalog.Rotors}},
		{reflectorFile, reflectorFileDoc{Reflectors: catalog.Reflectors}},
		{plugboardFile, plugboardFileDoc{Plugboards: catalog.Plugboards}},
	}
	for _, d := range docs {
		if err := write(filepath.Join(s.dir, d.base+ext), d.doc, 0o644); err != nil {
			return fmt.Errorf("write %s catalog: %w", d.base, err)
		}
		for _, other := range catalogExts {
			if other == ext {
				continue
			}
			err := os.Remove(filepath.Join(s.dir, d.base+other))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
	}
	return nil
}

// Compile-time assertion that CatalogFileStore implements domain.CatalogStore.
var _ domain.CatalogStore = (*CatalogFileStore)(nil)
