package page

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
)

// Raw HTML in the intro is dropped; goldmark only emits it with the unsafe renderer option.
var introMarkdown = goldmark.New()

// RenderIntro converts Markdown to an HTML fragment. Blank input renders to "".
func RenderIntro(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := introMarkdown.Convert([]byte(src), &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "render intro markdown").Build()
	}
	return strings.TrimSpace(buf.String()), nil
}
