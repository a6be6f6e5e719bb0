package nav

import (
	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
)

// Selectors of the two containers the sidebar is written into.
const (
	HeaderSelector   = "header"
	ExplorerSelector = ".explorer"
)

// Element is a mutable node of a host document.
type Element interface {
	SetText(text string)
	SetAttr(key, value string)
	AppendChild(child Element)
}

// Document is the page the sidebar is rendered into.
type Document interface {
	CreateElement(tag string) Element
	// Query returns the first element matching selector.
	Query(selector string) (Element, bool)
}

// Render appends the sidebar to doc: an h1 holding the title inside the
// header, then the entries inside the explorer container.
//
// The header is written before the explorer is looked up, so a missing
// explorer leaves the header changed. Calling Render twice on the same
// document appends a second copy of everything.
//
// Every label is written as text, so markup in a title or header shows up
// literally instead of being parsed.
func Render(doc Document, sb Sidebar) error {
	header, ok := doc.Query(HeaderSelector)
	if !ok {
		return errors.ElementNotFound(HeaderSelector)
	}
	h1 := doc.CreateElement("h1")
	h1.SetText(sb.Title)
	header.AppendChild(h1)

	explorer, ok := doc.Query(ExplorerSelector)
	if !ok {
		return errors.ElementNotFound(ExplorerSelector)
	}
	for _, e := range sb.Entries {
		explorer.AppendChild(renderEntry(doc, e))
	}
	return nil
}

// RenderConfig builds the sidebar for site under root and renders it into doc.
func RenderConfig(site config.SiteConfig, root string, doc Document) error {
	return Render(doc, Build(site, root))
}

func renderEntry(doc Document, e Entry) Element {
	var el Element
	switch e.Kind {
	case KindHeading:
		el = doc.CreateElement("h2")
		el.SetText(e.Label)
	case KindGroup:
		el = doc.CreateElement("div")
		for _, child := range e.Children {
			el.AppendChild(renderEntry(doc, child))
		}
	default:
		el = doc.CreateElement("a")
		el.SetAttr("href", e.Href)
		el.SetText(e.Label)
	}
	if e.Style != "" {
		el.SetAttr("style", e.Style)
	}
	return el
}
