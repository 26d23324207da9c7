package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/filebot/internal/common"
)

// MemoryClient is an in-memory provider used by tests. It content-addresses
// payloads by SHA-256 and tracks usage per token.
type MemoryClient struct {
	mu      sync.Mutex
	content map[string][]byte // cid -> payload
	usage   map[string]int64  // token -> stored bytes

	// TransferErr / UsageErr, when set, are returned instead of operating.
	TransferErr error
	UsageErr    error

	// RejectTokens lists tokens treated as invalid credentials.
	RejectTokens map[string]bool

	transfers int
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		content: make(map[string][]byte),
		usage:   make(map[string]int64),
	}
}

func (c *MemoryClient) Transfer(ctx context.Context, token string, name string, src io.Reader, size int64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transfers++

	if c.TransferErr != nil {
		return "", c.TransferErr
	}
	if c.RejectTokens[token] {
		return "", common.ErrorInvalidCredential
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("size mismatch: declared %d bytes, read %d", size, len(data))
	}

	sum := sha256.Sum256(data)
	cid := hex.EncodeToString(sum[:])
	c.content[cid] = data
	c.usage[token] += size
	return cid, nil
}

func (c *MemoryClient) QueryUsage(ctx context.Context, token string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.UsageErr != nil {
		return 0, c.UsageErr
	}
	if c.RejectTokens[token] {
		return 0, common.ErrorInvalidCredential
	}
	return c.usage[token], nil
}

// Transfers reports how many Transfer calls were made, failed or not.
func (c *MemoryClient) Transfers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transfers
}
