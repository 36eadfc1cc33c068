// Package migrations embeds the client-local schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
