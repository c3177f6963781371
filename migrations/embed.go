package migrations

import "embed"

// Files holds the forward-only schema scripts applied at startup and by init-db.
//
//go:embed *.sql
var Files embed.FS
