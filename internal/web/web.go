// Package web holds the server-rendered HTML pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page. Pages are addressed by file name, e.g.
// "book.html"; layout.html only contributes the shared header and footer.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
