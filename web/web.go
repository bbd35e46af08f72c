// Package web embeds the single-page client: a form that submits a
// description and dialect to the API and renders the generated SQL,
// Mermaid ERD and explanation.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// Handler serves the embedded client at the root path.
func Handler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
