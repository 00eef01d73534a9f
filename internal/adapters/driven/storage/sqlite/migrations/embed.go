// Package migrations carries the SQL schema files applied by the
// SQLite store at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
