package keysheet_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"enigmasim/internal/crypto"
	"enigmasim/internal/domain"
	"enigmasim/internal/services/cipher"
	"enigmasim/internal/services/keysheet"
	"enigmasim/internal/store"
)

const strongPass = "Correct-Horse-42"

// memRelay is an in-memory domain.RelayClient.
type memRelay struct {
	mu    sync.Mutex
	blobs map[domain.KeySheetName][]byte
}

func (r *memRelay) PublishKeySheet(_ context.Context, name domain.KeySheetName, sealed []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blobs == nil {
		r.blobs = map[domain.KeySheetName][]byte{}
	}
	r.blobs[name] = append([]byte(nil), sealed...)
	return nil
}

func (r *memRelay) FetchKeySheet(_ context.Context, name domain.KeySheetName) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blobs[name]
	if !ok {
		return nil, domain.ErrConfigurationNotFound
	}
	return b, nil
}

func (r *memRelay) ListKeySheets(context.Context) ([]domain.KeySheetName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.KeySheetName, 0, len(r.blobs))
	for n := range r.blobs {
		out = append(out, n)
	}
	return out, nil
}

func newService(t *testing.T, relay domain.RelayClient) *keysheet.Service {
	t.Helper()
	st := store.NewKeySheetFileStore(filepath.Join(t.TempDir(), "keysheets")).
		WithScryptParams(crypto.ScryptParams{N: 1 << 10, R: 8, P: 1})
	opts := []keysheet.Option{
		keysheet.WithArgon2Params(crypto.Argon2Params{Time: 1, Memory: 1024, Threads: 1}),
		keysheet.WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
	}
	if relay != nil {
		opts = append(opts, keysheet.WithRelay(relay))
	}
	return keysheet.New(st, cipher.New(nil, cipher.WithDefaults(true)), opts...)
}

func TestGenerate_ValidAndDistinctRotors(t *testing.T) {
	svc := newService(t, nil)
	for i := 0; i < 10; i++ {
		sheet, err := svc.GenerateKeySheet("random")
		if err != nil {
			t.Fatalf("GenerateKeySheet: %v", err)
		}
		if len(sheet.Rotors) != 3 || len(sheet.Positions) != 3 {
			t.Fatalf("rotors=%d positions=%q", len(sheet.Rotors), sheet.Positions)
		}
		seen := map[string]bool{}
		for _, r := range sheet.Rotors {
			if seen[r.Name] {
				t.Fatalf("rotor %s used twice", r.Name)
			}
			seen[r.Name] = true
		}
		if len(sheet.Plugboard.Connections) != 20 {
			t.Fatalf("plugboard has %d entries, want 20", len(sheet.Plugboard.Connections))
		}
		if _, err := cipher.MachineFromSheet(sheet); err != nil {
			t.Fatalf("generated sheet invalid: %v", err)
		}
		if sheet.CreatedUTC != 1700000000 {
			t.Fatalf("created = %d", sheet.CreatedUTC)
		}
	}
}

func TestGenerate_InvalidName(t *testing.T) {
	svc := newService(t, nil)
	if _, err := svc.GenerateKeySheet("no/slashes"); !errors.Is(err, domain.ErrInvalidKeySheetName) {
		t.Fatalf("err = %v, want ErrInvalidKeySheetName", err)
	}
}

func TestDerive_SameFingerprint(t *testing.T) {
	a := newService(t, nil)
	b := newService(t, nil)
	s1, err := a.DeriveKeySheet("x", "shared secret")
	if err != nil {
		t.Fatalf("DeriveKeySheet: %v", err)
	}
	s2, err := b.DeriveKeySheet("y", "shared secret")
	if err != nil {
		t.Fatalf("DeriveKeySheet: %v", err)
	}
	if a.FingerprintKeySheet(s1) != b.FingerprintKeySheet(s2) {
		t.Fatal("derived sheets differ")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	svc := newService(t, nil)
	sheet, err := svc.GenerateKeySheet("daily")
	if err != nil {
		t.Fatalf("GenerateKeySheet: %v", err)
	}
	if err := svc.SaveKeySheet(strongPass, sheet); err != nil {
		t.Fatalf("SaveKeySheet: %v", err)
	}
	got, err := svc.LoadKeySheet(strongPass, "daily")
	if err != nil {
		t.Fatalf("LoadKeySheet: %v", err)
	}
	if svc.FingerprintKeySheet(got) != svc.FingerprintKeySheet(sheet) {
		t.Fatal("loaded sheet differs from saved sheet")
	}
	names, err := svc.ListKeySheets()
	if err != nil || len(names) != 1 || names[0] != "daily" {
		t.Fatalf("names=%v err=%v", names, err)
	}
}

func TestSave_WeakPassphrase(t *testing.T) {
	svc := newService(t, nil)
	sheet, err := svc.GenerateKeySheet("daily")
	if err != nil {
		t.Fatalf("GenerateKeySheet: %v", err)
	}
	if err := svc.SaveKeySheet("short", sheet); !errors.Is(err, keysheet.ErrWeakPassphrase) {
		t.Fatalf("err = %v, want ErrWeakPassphrase", err)
	}
}

func TestSave_InvalidSheetRejected(t *testing.T) {
	svc := newService(t, nil)
	sheet, err := svc.GenerateKeySheet("daily")
	if err != nil {
		t.Fatalf("GenerateKeySheet: %v", err)
	}
	sheet.Reflector.Wiring = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if err := svc.SaveKeySheet(strongPass, sheet); !errors.Is(err, domain.ErrInvalidWiring) {
		t.Fatalf("err = %v, want ErrInvalidWiring", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	svc := newService(t, nil)
	if _, err := svc.LoadKeySheet(strongPass, "absent"); !errors.Is(err, domain.ErrConfigurationNotFound) {
		t.Fatalf("err = %v, want ErrConfigurationNotFound", err)
	}
}

func TestPublishFetch_ThroughRelay(t *testing.T) {
	relay := &memRelay{}
	alice := newService(t, relay)
	bob := newService(t, relay)

	sheet, err := alice.DeriveKeySheet("team", "orchard lantern")
	if err != nil {
		t.Fatalf("DeriveKeySheet: %v", err)
	}
	if err := alice.SaveKeySheet(strongPass, sheet); err != nil {
		t.Fatalf("SaveKeySheet: %v", err)
	}
	ctx := context.Background()
	if err := alice.PublishKeySheet(ctx, "team"); err != nil {
		t.Fatalf("PublishKeySheet: %v", err)
	}

	got, err := bob.FetchKeySheet(ctx, strongPass, "team")
	if err != nil {
		t.Fatalf("FetchKeySheet: %v", err)
	}
	if bob.FingerprintKeySheet(got) != alice.FingerprintKeySheet(sheet) {
		t.Fatal("fetched sheet differs")
	}
	if _, err := bob.LoadKeySheet(strongPass, "team"); err != nil {
		t.Fatalf("fetched sheet not stored: %v", err)
	}

	if _, err := bob.FetchKeySheet(ctx, "Wrong-Pass-99!", "team"); !errors.Is(err, crypto.ErrWrongPassphrase) {
		t.Fatalf("err = %v, want ErrWrongPassphrase", err)
	}
	if err := alice.PublishKeySheet(ctx, "unknown"); !errors.Is(err, domain.ErrConfigurationNotFound) {
		t.Fatalf("err = %v, want ErrConfigurationNotFound", err)
	}
}

func TestPublish_NoRelay(t *testing.T) {
	svc := newService(t, nil)
	if err := svc.PublishKeySheet(context.Background(), "x"); !errors.Is(err, keysheet.ErrNoRelay) {
		t.Fatalf("err = %v, want ErrNoRelay", err)
	}
}
