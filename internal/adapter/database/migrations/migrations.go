package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// For returns the migration files of one dialect rooted at the dialect dir.
func For(dialect string) (fs.FS, error) {
	return fs.Sub(files, dialect)
}
