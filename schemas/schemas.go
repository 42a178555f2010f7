// Package schemas embeds the default JSON Schema resources served by the catalog.
package schemas

import (
	"embed"
	"io/fs"
)

// StyleProfile is the file name of the default style payload schema.
const StyleProfile = "image-style-profile.schema.json"

//go:embed *.schema.json
var files embed.FS

// FS returns the embedded schema resources.
func FS() fs.FS {
	return files
}
