package app_test

import (
	"path/filepath"
	"testing"

	"enigmasim/internal/app"
	"enigmasim/internal/domain"
)

func TestLoadConfig_Env(t *testing.T) {
	home := t.TempDir()
	t.Setenv(app.EnvHome, home)
	t.Setenv(app.EnvCatalog, "")
	t.Setenv(app.EnvRelay, "http://relay.example:8080")

	cfg := app.LoadConfig()
	if cfg.Home != home {
		t.Fatalf("home = %q, want %q", cfg.Home, home)
	}
	if got, want := cfg.CatalogPath(), filepath.Join(home, "catalog"); got != want {
		t.Fatalf("catalog = %q, want %q", got, want)
	}
	if cfg.RelayURL != "http://relay.example:8080" {
		t.Fatalf("relay = %q", cfg.RelayURL)
	}
	if !cfg.AllowDefaults {
		t.Fatal("defaults should be allowed unless disabled")
	}
}

func TestNewWire_BuildsServices(t *testing.T) {
	home := t.TempDir()
	w, err := app.NewWire(app.Config{Home: home, AllowDefaults: true})
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	if w.Relay != nil {
		t.Fatal("relay client built without a relay URL")
	}
	if w.Catalog.Dir() != filepath.Join(home, "catalog") {
		t.Fatalf("catalog dir = %q", w.Catalog.Dir())
	}
	if _, err := w.Cipher.Build(domain.Selection{}); err != nil {
		t.Fatalf("Build with defaults: %v", err)
	}

	w, err = app.NewWire(app.Config{Home: home, RelayURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	if w.Relay == nil {
		t.Fatal("relay client missing")
	}
}
