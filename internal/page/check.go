package page

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
)

// Resource is a URL referenced from the page.
type Resource struct {
	URL       string
	Tag       string // a, img, script, link
	Attribute string // href or src
	Internal  bool   // relative to the output directory
}

// Document is the result of checking a rendered page.
type Document struct {
	Title      string
	Resources  []Resource
	ElementIDs []string
}

// Check parses r and verifies the page structure: an HTML doctype, an <html> root
// holding <head> and <body>, and a non-empty <title>. The HTML5 parser repairs
// almost any input, so these requirements are what make a page well-formed here.
func Check(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	if !hasDoctype(root) {
		return nil, malformed("missing doctype")
	}
	htmlNode := firstChildElement(root, atom.Html)
	if htmlNode == nil {
		return nil, malformed("missing <html> element")
	}
	head := firstChildElement(htmlNode, atom.Head)
	body := firstChildElement(htmlNode, atom.Body)
	if head == nil || body == nil {
		return nil, malformed("missing <head> or <body> element")
	}

	doc := &Document{}
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if id := attr(n, "id"); id != "" {
			doc.ElementIDs = append(doc.ElementIDs, id)
		}
		switch n.DataAtom {
		case atom.Title:
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(textContent(n))
			}
		case atom.A, atom.Link:
			doc.addResource(n, "href")
		case atom.Img, atom.Script:
			doc.addResource(n, "src")
		}
	})

	if doc.Title == "" {
		return nil, malformed("missing or empty <title>")
	}
	return doc, nil
}

// InternalResources returns the resources that must exist in the output directory.
// Fragment-only and special-scheme links are skipped.
func (d *Document) InternalResources() []Resource {
	var out []Resource
	for _, res := range d.Resources {
		if res.Internal {
			out = append(out, res)
		}
	}
	return out
}

// HasElementID reports whether an element with the given id exists.
func (d *Document) HasElementID(id string) bool {
	for _, v := range d.ElementIDs {
		if v == id {
			return true
		}
	}
	return false
}

func (d *Document) addResource(n *html.Node, key string) {
	v := attr(n, key)
	if v == "" || strings.HasPrefix(v, "#") {
		return
	}
	d.Resources = append(d.Resources, Resource{
		URL:       v,
		Tag:       n.Data,
		Attribute: key,
		Internal:  isInternal(v),
	})
}

// isInternal reports whether a link points into the site itself.
func isInternal(raw string) bool {
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(raw, prefix) {
			return false
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func hasDoctype(root *html.Node) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode && strings.EqualFold(c.Data, "html") {
			return true
		}
	}
	return false
}

func firstChildElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func malformed(reason string) error {
	return errors.ValidationError("generated page is malformed: " + reason).Build()
}
