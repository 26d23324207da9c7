package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filebot/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-t string   Telegram bot token
//	-a string   dashboard bind address (e.g., ":8080")
//	-v string   database driver (postgres|sqlite|memory)
//	-d string   database DSN
//	-k string   provider kind (web3|s3)
//	-e string   provider API endpoint
//	-q string   quota strategy (cached|live)
//	-m int      transfer timeout, minutes
//	-f string   staging directory
//	-x          probe a submitted credential before storing it
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-s string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-t", "-a", "-v", "-d", "-k", "-e", "-q", "-m", "-f", "-x", "-u", "-p", "-b", "-g", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.BotToken, "t", config.BotToken, "Telegram bot token")
	fs.StringVar(&config.DashboardAddr, "a", config.DashboardAddr, "address and port of the dashboard server")
	fs.StringVar(&config.DatabaseDriver, "v", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ProviderKind, "k", config.ProviderKind, "storage provider kind")
	fs.StringVar(&config.ProviderEndpoint, "e", config.ProviderEndpoint, "storage provider endpoint")
	fs.StringVar(&config.QuotaStrategy, "q", config.QuotaStrategy, "quota strategy (cached|live)")

	transferTimeout := fs.Int("m", int(config.TransferTimeout.Minutes()), "transfer timeout (in minutes)")

	fs.StringVar(&config.StagingDir, "f", config.StagingDir, "staging directory")
	fs.BoolVar(&config.ProbeCredential, "x", config.ProbeCredential, "probe credentials on submission")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TransferTimeout = time.Duration(*transferTimeout) * time.Minute
}
