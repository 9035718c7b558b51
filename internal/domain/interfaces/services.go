package interfaces

import (
	"context"

	domaintypes "enigmasim/internal/domain/types"
)

// KeySheetService creates, stores and exchanges key sheets.
type KeySheetService interface {
	GenerateKeySheet(name domaintypes.KeySheetName) (domaintypes.KeySheet, error)
	DeriveKeySheet(name domaintypes.KeySheetName, password string) (domaintypes.KeySheet, error)
	SaveKeySheet(passphrase string, sheet domaintypes.KeySheet) error
	LoadKeySheet(passphrase string, name domaintypes.KeySheetName) (domaintypes.KeySheet, error)
	ListKeySheets() ([]domaintypes.KeySheetName, error)
	FingerprintKeySheet(sheet domaintypes.KeySheet) domaintypes.Fingerprint
	PublishKeySheet(ctx context.Context, name domaintypes.KeySheetName) error
	FetchKeySheet(ctx context.Context, passphrase string, name domaintypes.KeySheetName) (domaintypes.KeySheet, error)
}
