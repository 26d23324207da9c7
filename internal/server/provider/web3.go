package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/filebot/internal/common"
)

// Web3Client talks to a Web3.Storage-compatible HTTP API: a bearer-token
// upload endpoint returning a CID, and an uploads listing for usage.
type Web3Client struct {
	endpoint string
	client   *http.Client
}

// NewWeb3Client constructs a client for the given API base URL,
// e.g. "https://api.web3.storage".
func NewWeb3Client(endpoint string) *Web3Client {
	return &Web3Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{},
	}
}

func (c *Web3Client) Transfer(ctx context.Context, token string, name string, src io.Reader, size int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", src)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-NAME", url.PathEscape(name))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", common.ErrorInvalidCredential
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}

	var out struct {
		CID string `json:"cid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.CID == "" {
		return "", fmt.Errorf("upload response without cid")
	}
	return out.CID, nil
}

func (c *Web3Client) QueryUsage(ctx context.Context, token string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/user/uploads?size=500", nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("usage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return 0, common.ErrorInvalidCredential
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("usage query failed: %s", resp.Status)
	}

	var uploads []struct {
		DagSize int64 `json:"dagSize"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploads); err != nil {
		return 0, fmt.Errorf("decode usage response: %w", err)
	}

	var total int64
	for _, u := range uploads {
		total += u.DagSize
	}
	return total, nil
}
