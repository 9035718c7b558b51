package interfaces

import domaintypes "enigmasim/internal/domain/types"

// CatalogStore loads and writes the rotor, reflector and plugboard
// collections. A missing collection is reported with an error wrapping
// fs.ErrNotExist so callers can decide whether to fall back to defaults.
type CatalogStore interface {
	LoadRotors() ([]domaintypes.RotorSpec, error)
	LoadReflectors() ([]domaintypes.ReflectorSpec, error)
	LoadPlugboards() ([]domaintypes.PlugboardSpec, error)
	SaveCatalog(catalog domaintypes.Catalog, format domaintypes.CatalogFormat) error
}

// KeySheetStore persists key sheets sealed under a passphrase.
type KeySheetStore interface {
	SaveKeySheet(passphrase string, sheet domaintypes.KeySheet) error
	LoadKeySheet(passphrase string, name domaintypes.KeySheetName) (domaintypes.KeySheet, bool, error)
	ListKeySheets() ([]domaintypes.KeySheetName, error)

	// Sealed blobs, as exchanged with the relay.
	SaveSealedKeySheet(name domaintypes.KeySheetName, blob []byte) error
	LoadSealedKeySheet(name domaintypes.KeySheetName) ([]byte, bool, error)
}
