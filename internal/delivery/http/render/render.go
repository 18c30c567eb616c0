// Package render provides the HTML template renderer for the web delivery.
// Templates are embedded so the binary ships self-contained.
package render

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates once at startup.
func New() (*Renderer, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"deadlineInput": formatDeadlineInput,
		"deadlineHuman": formatDeadlineHuman,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return errors.Wrapf(r.templates.ExecuteTemplate(w, name, data), "failed to render %s", name)
}

// StaticFS exposes the embedded static assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The subtree is embedded at compile time; a failure here is a build defect.
		panic(err)
	}

	return sub
}
