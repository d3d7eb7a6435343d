// Package migrations ships the SQL schema with the binary so the API can
// migrate on startup without a migrations directory on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
