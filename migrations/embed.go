// Package migrations embeds the PostgreSQL schema applied by
// "mediqueue-server migrate up".
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
