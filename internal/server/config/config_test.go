package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "env-token")

	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "env-token", cfg.BotToken)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "filebot.db", cfg.DatabaseDSN)
	assert.Equal(t, "web3", cfg.ProviderKind)
	assert.Equal(t, "https://api.web3.storage", cfg.ProviderEndpoint)
	assert.Equal(t, "cached", cfg.QuotaStrategy)
	assert.Equal(t, 5*time.Minute, cfg.TransferTimeout)
	assert.False(t, cfg.ProbeCredential)
	assert.Equal(t, ":8080", cfg.DashboardAddr)
	assert.Equal(t, "uploads", cfg.StagingDir)
	assert.Equal(t, "filebot", cfg.S3Bucket)
}

func TestParseJson(t *testing.T) {
	content := `{
		"bot_token": "json-token",
		"database_driver": "postgres",
		"database_dsn": "postgres://localhost/filebot",
		"provider_kind": "s3",
		"provider_endpoint": "https://example.invalid",
		"quota_strategy": "live",
		"transfer_timeout": "3m",
		"probe_credential": true,
		"dashboard_addr": ":9090",
		"staging_dir": "/tmp/stage",
		"s3_root_user": "root",
		"s3_root_password": "pw",
		"s3_bucket": "bkt",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/"
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"test", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "json-token", cfg.BotToken)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "postgres://localhost/filebot", cfg.DatabaseDSN)
	assert.Equal(t, "s3", cfg.ProviderKind)
	assert.Equal(t, "live", cfg.QuotaStrategy)
	assert.Equal(t, 3*time.Minute, cfg.TransferTimeout)
	assert.True(t, cfg.ProbeCredential)
	assert.Equal(t, ":9090", cfg.DashboardAddr)
	assert.Equal(t, "bkt", cfg.S3Bucket)
}

func TestParseJson_NoFile(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"test"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"test",
		"-t", "flag-token",
		"-v", "memory",
		"-q", "live",
		"-m", "2",
		"-a", ":7070",
		"-x",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "flag-token", cfg.BotToken)
	assert.Equal(t, "memory", cfg.DatabaseDriver)
	assert.Equal(t, "live", cfg.QuotaStrategy)
	assert.Equal(t, 2*time.Minute, cfg.TransferTimeout)
	assert.Equal(t, ":7070", cfg.DashboardAddr)
	assert.True(t, cfg.ProbeCredential)
}
