// Package web holds the embedded HTML templates. Templates are
// presentation glue only; behavior lives in the handlers and services.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates into one set, keyed by
// file name.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
