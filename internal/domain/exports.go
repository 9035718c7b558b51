package domain

import (
	interfaces "enigmasim/internal/domain/interfaces"
	types "enigmasim/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	KeySheetName  = types.KeySheetName
	Fingerprint   = types.Fingerprint
	CodecMode     = types.CodecMode
	CatalogFormat = types.CatalogFormat
	RotorSpec     = types.RotorSpec
	ReflectorSpec = types.ReflectorSpec
	PlugboardSpec = types.PlugboardSpec
	Selection     = types.Selection
	Catalog       = types.Catalog
	KeySheet      = types.KeySheet
	ConfigError   = types.ConfigError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CatalogStore    = interfaces.CatalogStore
	KeySheetStore   = interfaces.KeySheetStore
	RelayClient     = interfaces.RelayClient
	KeySheetService = interfaces.KeySheetService
)

// Constants re-exported from the types subpackage.
const (
	CodecRaw             = types.CodecRaw
	CodecAuto            = types.CodecAuto
	CatalogJSON          = types.CatalogJSON
	CatalogYAML          = types.CatalogYAML
	DefaultPlugboardName = types.DefaultPlugboardName
	MaxKeySheetNameLen   = types.MaxKeySheetNameLen
)

// Error kinds re-exported from the types subpackage.
var (
	ErrInvalidWiring         = types.ErrInvalidWiring
	ErrInvalidPlugboard      = types.ErrInvalidPlugboard
	ErrConfigurationNotFound = types.ErrConfigurationNotFound
	ErrMalformedPosition     = types.ErrMalformedPosition
	ErrInvalidKeySheetName   = types.ErrInvalidKeySheetName
)

// Function re-exports.
var (
	DefaultCatalog     = types.DefaultCatalog
	PlugboardFromPairs = types.PlugboardFromPairs
	ParseCatalogFormat = types.ParseCatalogFormat
)
