// Package assets embeds the page template, styles, client script and map
// widget templates served by waymap.
package assets

import "embed"

// Files holds every embedded asset.
//
//go:embed index.html.tpl style.css script.js favicon.svg widgets/*.html.tpl
var Files embed.FS

// Named assets read once at startup.
var (
	Index   = mustRead("index.html.tpl")
	Style   = mustRead("style.css")
	Script  = mustRead("script.js")
	Favicon = mustRead("favicon.svg")
)

func mustRead(name string) []byte {
	data, err := Files.ReadFile(name)
	if err != nil {
		panic("assets: " + err.Error())
	}
	return data
}
