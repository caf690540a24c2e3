// Package migrations embeds the goose migrations for the SQL credential backends.
package migrations

import "embed"

// Postgres holds migrations under "postgres"; SQLite under "sqlite".
//
//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
