// Package htmldoc adapts parsed HTML pages to the nav.Document interface.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/pkg/nav"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page. It is not safe for concurrent use.
type Document struct {
	root *html.Node
}

// Element wraps one element node of a Document.
type Element struct {
	node *html.Node
}

var (
	_ nav.Document = (*Document)(nil)
	_ nav.Element  = (*Element)(nil)
)

// Parse reads a complete HTML page. Missing html, head and body elements
// are synthesized by the parser.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ParseFile reads and parses the page at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.PageRead(path, err)
	}
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.PageParse(path, err)
	}
	return doc, nil
}

// CreateElement returns a detached element with the given tag.
func (d *Document) CreateElement(tag string) nav.Element {
	tag = strings.ToLower(tag)
	return &Element{node: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// Query returns the first element in document order matching selector.
// Supported selectors are "tag", ".class", "#id" and combinations such as
// "nav.explorer".
func (d *Document) Query(selector string) (nav.Element, bool) {
	m, err := parseSelector(selector)
	if err != nil {
		return nil, false
	}
	n := find(d.root, m)
	if n == nil {
		return nil, false
	}
	return &Element{node: n}, true
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []*Element {
	m, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if m.matches(n) {
			out = append(out, &Element{node: n})
		}
		return true
	})
	return out
}

// InjectScript appends an inline script to the end of the body. It reports
// false when the page has no body.
func (d *Document) InjectScript(source string) bool {
	body := find(d.root, selector{tag: "body"})
	if body == nil {
		return false
	}
	script := d.CreateElement("script").(*Element)
	script.node.AppendChild(&html.Node{Type: html.TextNode, Data: source})
	body.AppendChild(script.node)
	return true
}

// Render serializes the page.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the serialized page.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// WriteFile serializes the page to path, creating parent directories.
func (d *Document) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return errors.PageWrite(path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.PageWrite(path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.PageWrite(path, err)
	}
	return nil
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text of the element and its descendants.
func (e *Element) Text() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(key, value string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// Attr returns the value of an attribute and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	return attr(e.node, key)
}

// AppendChild moves child to the end of this element's children. child
// must come from an htmldoc Document.
func (e *Element) AppendChild(child nav.Element) {
	c, ok := child.(*Element)
	if !ok {
		panic(fmt.Sprintf("htmldoc: cannot append %T", child))
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{node: c})
		}
	}
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// walk visits n and its descendants depth first, stopping when fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func find(root *html.Node, m selector) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if m.matches(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
