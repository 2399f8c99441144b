// Package migrations carries the versioned SQL schema for the SQLite store.
package migrations

import "embed"

// FS holds every migration file, embedded at compile time so the binary
// is self-contained.
//
//go:embed *.sql
var FS embed.FS
