package webserver

import (
	"embed"
	"io/fs"
)

//go:embed views css
var embedded embed.FS

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(embedded, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	viewsFS = mustSub("views")
	cssFS   = mustSub("css")
)
