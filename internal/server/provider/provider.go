// Package provider abstracts the remote content-addressed storage service.
// The ledger treats it as a black box: bytes go in, a content-address comes
// out, and optionally the total stored size can be queried.
package provider

import (
	"context"
	"io"
)

// Client is the storage-provider contract.
//
// Transfer uploads size bytes read from src under the user's bearer token
// and returns the provider's content-address. Transfer must honor ctx
// cancellation; the orchestrator applies a bounded timeout around it.
//
// QueryUsage returns the total number of bytes stored under the token.
// Implementations that cannot answer per-token must document their scope.
type Client interface {
	Transfer(ctx context.Context, token string, name string, src io.Reader, size int64) (string, error)
	QueryUsage(ctx context.Context, token string) (int64, error)
}
