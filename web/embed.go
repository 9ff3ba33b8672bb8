package web

import "embed"

// StaticFS embeds the single-page front-end served at /.
//
//go:embed static
var StaticFS embed.FS
