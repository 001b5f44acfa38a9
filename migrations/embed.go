// Package migrations embeds the SQL schema so tools and tests can apply it
// without a migration runner.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed postgres/*.up.sql
var postgresFS embed.FS

// PostgresUp returns every postgres up-migration in file name order
func PostgresUp() ([]string, error) {
	names, err := fs.Glob(postgresFS, "postgres/*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	scripts := make([]string, 0, len(names))
	for _, name := range names {
		data, err := postgresFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, string(data))
	}
	return scripts, nil
}
