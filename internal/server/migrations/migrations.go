// Package migrations embeds the SQL schema migrations, one directory per
// supported dialect, for goose to run at startup.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var Sqlite embed.FS
