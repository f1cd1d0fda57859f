// Package assets embeds the sample content served when no content
// directory is deployed alongside the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed content
var content embed.FS

// Content returns the sample content rooted at the directory holding
// posts.json.
func Content() fs.FS {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		panic(err)
	}
	return sub
}
