package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filebot/internal/server/config"
)

func TestNewClientFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	client, err := NewClientFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &Web3Client{}, client)

	cfg.ProviderKind = "s3"
	cfg.StagingDir = t.TempDir()
	client, err = NewClientFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &S3Client{}, client)

	cfg.ProviderKind = "ftp"
	_, err = NewClientFromConfig(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider kind")
}
