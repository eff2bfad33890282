// Package sentiment holds assets shared by the binaries, such as the embedded
// PostgreSQL migrations.
package sentiment

import "embed"

// Migrations contains the goose migrations for the PostgreSQL backend.
//
//go:embed migrations/*.sql
var Migrations embed.FS
