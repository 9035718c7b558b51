// Package store provides file-based persistence for machine configuration.
//
// It contains concrete implementations of the domain storage interfaces.
// All methods are concurrency-safe via internal locking and every write goes
// through a temp file and rename, so a crash never leaves a half-written
// file behind.
//
// The package includes stores for:
//   - Configuration catalogs: rotor, reflector and plugboard collections as
//     JSON or YAML files (CatalogFileStore)
//   - Key sheets sealed under a passphrase, one file per sheet
//     (KeySheetFileStore)
package store
