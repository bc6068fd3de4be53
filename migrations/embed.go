// Package migrations holds the postgres schema migrations, embedded so the
// server and migrate binaries do not depend on the working directory.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
