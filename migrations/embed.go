package migrations

import "embed"

// Files holds the forward-only SQL migrations compiled into the binary.
// Versions are the numeric filename prefixes.
//
//go:embed *.sql
var Files embed.FS
