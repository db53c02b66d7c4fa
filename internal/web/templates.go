package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/ajaym/portfolio/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"even": func(i int) bool { return i%2 == 0 },
	"imageAt": func(images []content.Image, i int) *content.Image {
		if i < 0 || i >= len(images) {
			return nil
		}
		return &images[i]
	},
	"formatTime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
