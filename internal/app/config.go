package app

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// Environment variables read by LoadConfig.
const (
	EnvHome       = "ENIGMA_HOME"
	EnvCatalog    = "ENIGMA_CATALOG"
	EnvRelay      = "ENIGMA_RELAY"
	EnvRelayToken = "ENIGMA_RELAY_TOKEN"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home          string       // state directory, e.g. $HOME/.enigma
	CatalogDir    string       // rotor/reflector/plugboard files; defaults to Home/catalog
	RelayURL      string       // keysheetd base URL, e.g. http://127.0.0.1:8080; empty disables the relay
	RelayToken    string       // bearer token for publishing
	AllowDefaults bool         // fall back to built-in collections for missing catalog files
	HTTP          *http.Client // optional; defaults to http.DefaultClient
	Logger        *slog.Logger // optional; defaults to a discarding logger
}

// LoadConfig returns the defaults overridden by the ENIGMA_* environment.
// Command-line flags are applied on top by the caller.
func LoadConfig() Config {
	home := getEnv(EnvHome, defaultHome())
	return Config{
		Home:          home,
		CatalogDir:    getEnv(EnvCatalog, ""),
		RelayURL:      getEnv(EnvRelay, ""),
		RelayToken:    getEnv(EnvRelayToken, ""),
		AllowDefaults: true,
	}
}

// CatalogPath returns the catalog directory, defaulting to Home/catalog.
func (c Config) CatalogPath() string {
	if c.CatalogDir != "" {
		return c.CatalogDir
	}
	return filepath.Join(c.Home, "catalog")
}

// KeySheetPath returns the directory holding sealed key sheets.
func (c Config) KeySheetPath() string { return filepath.Join(c.Home, "keysheets") }

func defaultHome() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".enigma")
	}
	return ".enigma"
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
