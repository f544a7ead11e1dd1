// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds the migration files applied at service startup.
//
//go:embed *.sql
var FS embed.FS
