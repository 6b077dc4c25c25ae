// Package migrations embeds the SQL schema migrations so binaries can run
// them without access to the source tree.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var files embed.FS

// FS returns the embedded migrations filesystem
func FS() fs.FS {
	return files
}
