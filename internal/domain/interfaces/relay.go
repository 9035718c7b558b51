package interfaces

import (
	"context"

	domaintypes "enigmasim/internal/domain/types"
)

// RelayClient is how we talk to the key-sheet server, all with context.
// Only sealed blobs cross the wire.
type RelayClient interface {
	PublishKeySheet(ctx context.Context, name domaintypes.KeySheetName, sealed []byte) error
	FetchKeySheet(ctx context.Context, name domaintypes.KeySheetName) ([]byte, error)
	ListKeySheets(ctx context.Context) ([]domaintypes.KeySheetName, error)
}
