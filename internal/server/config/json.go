package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filebot/internal/flagx"
	"github.com/dmitrijs2005/filebot/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; its fields are copied into the runtime Config.
type JsonConfig struct {
	BotToken         string         `json:"bot_token"`
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	ProviderKind     string         `json:"provider_kind"`
	ProviderEndpoint string         `json:"provider_endpoint"`
	QuotaStrategy    string         `json:"quota_strategy"`
	TransferTimeout  timex.Duration `json:"transfer_timeout"`
	ProbeCredential  bool           `json:"probe_credential"`
	DashboardAddr    string         `json:"dashboard_addr"`
	StagingDir       string         `json:"staging_dir"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, matching the flag-parsing behavior.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.BotToken = c.BotToken
	config.DatabaseDriver = c.DatabaseDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.ProviderKind = c.ProviderKind
	config.ProviderEndpoint = c.ProviderEndpoint
	config.QuotaStrategy = c.QuotaStrategy
	config.TransferTimeout = c.TransferTimeout.Duration
	config.ProbeCredential = c.ProbeCredential
	config.DashboardAddr = c.DashboardAddr
	config.StagingDir = c.StagingDir
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
