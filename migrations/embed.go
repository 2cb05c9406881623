package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

// Files stores forward-only SQL migrations embedded into the binary, one
// directory per SQL dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var Files embed.FS

// ForDialect returns the migration set for a gorm dialector name.
func ForDialect(dialect string) (fs.FS, error) {
	switch dialect {
	case "sqlite", "postgres":
		return fs.Sub(Files, dialect)
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
