// Package htmldoc exposes an HTML page as a document whose elements can be
// looked up by id and have their attributes rewritten.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/roboco-io/ogpreview/internal/ogimage"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Element wraps an element node.
type Element struct {
	node *html.Node
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseFile reads an HTML page from path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) (ogimage.Element, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return &Element{node: n}, true
}

// Attribute returns the value of attribute name on the element with id.
func (d *Document) Attribute(id, name string) (string, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return "", false
	}
	return getAttr(n, name)
}

// Render writes the page as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Bytes returns the rendered page.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the page to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// SetAttribute sets or replaces an attribute.
func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.node.Data
}

// findByID walks the tree depth-first.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := getAttr(n, "id"); ok && v == id {
			return n
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findByID(c, id); result != nil {
			return result
		}
	}

	return nil
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
