// Package web embeds the dashboard's HTML templates.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

// Pages lists every page template besides the layout.
var Pages = []string{"login", "users", "authors", "ebooks"}
