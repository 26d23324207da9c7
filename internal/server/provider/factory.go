package provider

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/server/config"
)

// NewClientFromConfig creates the storage-provider client selected by the
// server configuration.
func NewClientFromConfig(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.ProviderKind {
	case "web3":
		return NewWeb3Client(cfg.ProviderEndpoint), nil
	case "s3":
		return NewS3Client(ctx, S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			StagingDir:   cfg.StagingDir,
		})
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", cfg.ProviderKind)
	}
}
