// Package crypto holds the primitives behind key sheets.
//
// Contents
//
//   - Password derivation of complete machine settings (DeriveKeySheet):
//     Argon2id stretch, HKDF-SHA256 streams, unbiased shuffles
//   - Uniform sampling helpers over any byte stream (Intn, Perm,
//     RandomPairs, RandomLetters, ReflectorWiring)
//   - Passphrase sealing of stored sheets (Seal, Open): scrypt key
//     derivation and ChaCha20-Poly1305 in a versioned JSON envelope
//   - Short settings fingerprints for display and comparison (Fingerprint)
//
// # Notes
//
// Derived key material is wiped with memzero once used. None of this makes
// the rotor cipher itself secure; it protects the stored settings.
package crypto
