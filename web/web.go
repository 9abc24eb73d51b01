// Package web embeds the board's browser client.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// FS returns the static assets rooted at the directory the file
// server expects, without the static/ prefix.
func FS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
