// Package migrations embeds the postgres schema so the server and the
// integration tests apply the same files regardless of working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
