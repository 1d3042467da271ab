// Package migrations embeds the versioned SQL files applied by
// internal/database/migration.
package migrations

import "embed"

//go:embed V*__*.sql
var FS embed.FS
