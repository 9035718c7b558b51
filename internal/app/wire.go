package app

import (
	"log/slog"
	"net/http"

	"enigmasim/internal/domain"
	"enigmasim/internal/relay"
	"enigmasim/internal/services/cipher"
	"enigmasim/internal/services/keysheet"
	"enigmasim/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Catalog   *store.CatalogFileStore
	KeySheets domain.KeySheetStore
	Cipher    *cipher.Service
	Sheets    domain.KeySheetService
	Relay     domain.RelayClient // nil when no relay URL is configured
	HTTP      *http.Client
	Logger    *slog.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// File-based stores
	catalogStore := store.NewCatalogFileStore(cfg.CatalogPath())
	sheetStore := store.NewKeySheetFileStore(cfg.KeySheetPath())

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// Relay client (uses provided HTTP client)
	var rc domain.RelayClient
	sheetOpts := []keysheet.Option{keysheet.WithLogger(logger)}
	if cfg.RelayURL != "" {
		hc := relay.NewHTTP(cfg.RelayURL, cfg.RelayToken)
		hc.HTTP = httpClient
		rc = hc
		sheetOpts = append(sheetOpts, keysheet.WithRelay(hc))
	}

	// High-level services
	cipherSvc := cipher.New(catalogStore, cipher.WithDefaults(cfg.AllowDefaults), cipher.WithLogger(logger))
	sheetSvc := keysheet.New(sheetStore, cipherSvc, sheetOpts...)

	return &Wire{
		Catalog:   catalogStore,
		KeySheets: sheetStore,
		Cipher:    cipherSvc,
		Sheets:    sheetSvc,
		Relay:     rc,
		HTTP:      httpClient,
		Logger:    logger,
	}, nil
}
