package nav

import "strings"

// fakeElement is an in-memory Element used to observe what Render writes.
type fakeElement struct {
	tag      string
	classes  []string
	text     string
	attrs    map[string]string
	children []*fakeElement
}

func (e *fakeElement) SetText(text string) { e.text = text }

func (e *fakeElement) SetAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
}

func (e *fakeElement) AppendChild(child Element) {
	e.children = append(e.children, child.(*fakeElement))
}

// all returns e and its descendants in document order.
func (e *fakeElement) all() []*fakeElement {
	out := []*fakeElement{e}
	for _, c := range e.children {
		out = append(out, c.all()...)
	}
	return out
}

// anchors returns the href of every descendant "a" in document order.
func (e *fakeElement) anchors() []*fakeElement {
	var out []*fakeElement
	for _, el := range e.all()[1:] {
		if el.tag == "a" {
			out = append(out, el)
		}
	}
	return out
}

type fakeDocument struct {
	root    *fakeElement
	created int
}

// newFakeDocument returns a page with a header and an explorer container.
func newFakeDocument(withHeader, withExplorer bool) *fakeDocument {
	root := &fakeElement{tag: "body"}
	if withHeader {
		root.children = append(root.children, &fakeElement{tag: "header"})
	}
	if withExplorer {
		root.children = append(root.children, &fakeElement{tag: "nav", classes: []string{"explorer"}})
	}
	return &fakeDocument{root: root}
}

func (d *fakeDocument) CreateElement(tag string) Element {
	d.created++
	return &fakeElement{tag: tag}
}

func (d *fakeDocument) Query(selector string) (Element, bool) {
	el := d.find(selector)
	if el == nil {
		return nil, false
	}
	return el, true
}

func (d *fakeDocument) find(selector string) *fakeElement {
	for _, el := range d.root.all() {
		if class, ok := strings.CutPrefix(selector, "."); ok {
			for _, c := range el.classes {
				if c == class {
					return el
				}
			}
			continue
		}
		if el.tag == selector {
			return el
		}
	}
	return nil
}

func (d *fakeDocument) header() *fakeElement   { return d.find(HeaderSelector) }
func (d *fakeDocument) explorer() *fakeElement { return d.find(ExplorerSelector) }
