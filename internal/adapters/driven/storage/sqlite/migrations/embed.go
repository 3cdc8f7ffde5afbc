// Package migrations embeds the SQLite schema migrations.
package migrations

import "embed"

// FS holds the versioned NNN_name.up.sql and .down.sql files.
//
//go:embed *.sql
var FS embed.FS
