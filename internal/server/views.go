package server

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// newViewEngine builds the HTML template engine from the embedded views.
func newViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("formatTime", func(t time.Time) string {
		return t.Format("Jan 2, 2006 at 3:04 PM")
	})
	return engine
}
