// Package migrations carries the numbered schema scripts applied by the
// sqlite store on open.
package migrations

import "embed"

// FS holds the NNN_name.up.sql and NNN_name.down.sql pairs.
//
//go:embed *.sql
var FS embed.FS
