// Package migrations embeds the schema for every supported dialect. godror
// shares the oracle set.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite3/*.sql oracle/*.sql
var FS embed.FS
