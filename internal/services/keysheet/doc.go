// Package keysheet manages named machine settings.
//
// It generates random sheets from the catalog, derives sheets from a
// password, enforces passphrase policy before sealing them into the
// domain.KeySheetStore, and exchanges sealed blobs via the RelayClient.
package keysheet
