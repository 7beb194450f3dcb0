// Package web holds the HTML templates compiled into the binaries.
package web

import (
	"embed"
	"html/template"
)

//go:embed template/*.html
var templateFS embed.FS

// Templates parses every embedded template with funcs available. Each file is
// addressable by its base name, e.g. "home.html".
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "template/*.html")
}
