// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the FileBot server.
//
// Fields:
//   - BotToken: Telegram Bot API token (defaults from the BOT_TOKEN env var).
//   - DatabaseDriver / DatabaseDSN: ledger storage backend ("postgres",
//     "sqlite", or "memory") and its DSN.
//   - ProviderKind: storage provider backend ("web3" or "s3").
//   - ProviderEndpoint: base URL of the Web3.Storage-compatible API.
//   - QuotaStrategy: "cached" (counter on the account) or "live"
//     (provider usage query on demand).
//   - TransferTimeout: upper bound on one remote transfer.
//   - ProbeCredential: validate a submitted token with a provider probe
//     call before storing it.
//   - DashboardAddr: bind address of the read-only dashboard HTTP server.
//   - StagingDir: local spool directory for provider backends that stage.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     settings for the S3-compatible provider backend.
type Config struct {
	BotToken         string
	DatabaseDriver   string
	DatabaseDSN      string
	ProviderKind     string
	ProviderEndpoint string
	QuotaStrategy    string
	TransferTimeout  time.Duration
	ProbeCredential  bool
	DashboardAddr    string
	StagingDir       string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.BotToken = os.Getenv("BOT_TOKEN")
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "filebot.db"
	c.ProviderKind = "web3"
	c.ProviderEndpoint = "https://api.web3.storage"
	c.QuotaStrategy = "cached"
	c.TransferTimeout = 5 * time.Minute
	c.ProbeCredential = false
	c.DashboardAddr = ":8080"
	c.StagingDir = "uploads"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "filebot"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
