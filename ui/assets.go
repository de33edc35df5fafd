package ui

import "embed"

// Assets holds the page templates, the default about text and static files
//
//go:embed templates static
var Assets embed.FS
