package page

import (
	"bytes"
	"embed"
	"text/template"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Options are the values substituted into the page template.
type Options struct {
	Title          string
	Stylesheet     string
	HashLibraryURL string
	DefaultMessage string
	// Intro is optional Markdown shown above the first step.
	Intro string
}

// DefaultOptions returns the options that reproduce the stock demo page.
func DefaultOptions() Options {
	return Options{
		Title:          "Public Private Key Demo",
		Stylesheet:     "stylesheets/style.css",
		HashLibraryURL: "https://cdnjs.cloudflare.com/ajax/libs/crypto-js/4.1.1/crypto-js.min.js",
		DefaultMessage: "Hello, Blockchain!",
	}
}

type templateData struct {
	Title          string
	Stylesheet     string
	HashLibraryURL string
	DefaultMessage string
	Intro          string
}

// Render produces the demo page markup.
func Render(opts Options) ([]byte, error) {
	intro, err := RenderIntro(opts.Intro)
	if err != nil {
		return nil, err
	}

	data := templateData{
		Title:          opts.Title,
		Stylesheet:     opts.Stylesheet,
		HashLibraryURL: opts.HashLibraryURL,
		DefaultMessage: opts.DefaultMessage,
		Intro:          intro,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "execute page template").Build()
	}
	return buf.Bytes(), nil
}
