package store

import (
	"context"

	"mcphub/internal/types"
)

// ClientStore is the source of per-client configuration documents.
// Implementations SHOULD keep reads cheap; the resolver adds an in-process
// cache on top, so hot-path lookups never hit the backend twice.
type ClientStore interface {
	// GetClientDocument returns the document for a clientID.
	// MUST return types.ErrNotFound if the client does not exist.
	GetClientDocument(ctx context.Context, clientID string) (types.ClientDocument, error)

	// ListClients enumerates known client IDs, sorted by name. An empty
	// result is valid (no clients configured yet), not an error.
	ListClients(ctx context.Context) ([]string, error)

	PutClientDocument(ctx context.Context, clientID string, doc types.ClientDocument) error

	DeleteClientDocument(ctx context.Context, clientID string) error

	// DocumentRef describes where the document for clientID lives
	// (file path, redis key, table item). Used in operator-facing errors.
	DocumentRef(clientID string) string

	// ClearAll purges all client documents. Used in tests only.
	ClearAll(ctx context.Context) error
}
