// Package migrations embeds the server schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
