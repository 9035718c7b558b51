package crypto

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"enigmasim/internal/util/memzero"
)

const (
	// envelopeVersion is the current sealed blob format.
	envelopeVersion = 1

	// Bounds on the scrypt parameters accepted from a blob, which may come
	// from the relay. Memory use is 128*N*r bytes and p multiplies the work.
	maxScryptN = 1 << 20
	maxScryptR = 16
	maxScryptP = 4
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed blob has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key sheet")

	// ErrMalformedEnvelope is returned for blobs that are not a sealed
	// envelope at all.
	ErrMalformedEnvelope = errors.New("malformed sealed envelope")
)

// ScryptParams tunes the key derivation of Seal.
type ScryptParams struct {
	N, R, P int
}

// DefaultScryptParams returns the parameters used for sealing on disk.
func DefaultScryptParams() ScryptParams { return ScryptParams{N: 1 << 15, R: 8, P: 1} }

// envelope is the JSON structure holding the ciphertext and KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Seal derives a key from passphrase and encrypts raw into a JSON envelope.
func Seal(passphrase string, raw []byte, params ScryptParams) ([]byte, error) {
	if err := checkScryptParams(params.N, params.R, params.P); err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; the salt makes every key unique
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(envelope{
		V:      envelopeVersion,
		Salt:   salt[:],
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Cipher: ct,
	})
}

// Open decrypts a JSON envelope produced by Seal.
func Open(passphrase string, sealed []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(sealed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.V < 1 || env.V > envelopeVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedEnvelope, env.V)
	}
	if err := checkScryptParams(env.N, env.R, env.P); err != nil {
		return nil, err
	}

	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func checkScryptParams(n, r, p int) error {
	switch {
	case n < 2 || n > maxScryptN:
		return fmt.Errorf("%w: scrypt N %d outside 2..%d", ErrMalformedEnvelope, n, maxScryptN)
	case r < 1 || r > maxScryptR:
		return fmt.Errorf("%w: scrypt r %d outside 1..%d", ErrMalformedEnvelope, r, maxScryptR)
	case p < 1 || p > maxScryptP:
		return fmt.Errorf("%w: scrypt p %d outside 1..%d", ErrMalformedEnvelope, p, maxScryptP)
	}
	return nil
}
