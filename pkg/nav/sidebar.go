// Package nav turns a site configuration into sidebar entries and renders
// them into a host document.
package nav

import (
	"fmt"

	"github.com/grovetools/docnav/config"
)

// Fixed labels and inline styles of the sidebar layout.
const (
	PluginsHeading = "Plugins"
	HeadingStyle   = "color: white; padding-top: 1rem;"
	GroupStyle     = "margin-left: 1rem;"
	BatchStyle     = "padding-top: 1rem;"
)

// Kind identifies the type of a sidebar entry.
type Kind int

const (
	KindLink Kind = iota
	KindHeading
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindHeading:
		return "heading"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one node of the sidebar. Links carry Label and Href, headings
// carry Label, groups carry Children. Style is empty when the entry is
// rendered without an inline style.
type Entry struct {
	Kind     Kind    `json:"kind"`
	Label    string  `json:"label,omitempty"`
	Href     string  `json:"href,omitempty"`
	Style    string  `json:"style,omitempty"`
	Children []Entry `json:"children,omitempty"`
}

// Sidebar is the renderable form of a SiteConfig.
type Sidebar struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Build computes the sidebar for site under root. Every href is
// root + address, concatenated as is. Fields are never validated: an empty
// header or address produces an empty label or href.
func Build(site config.SiteConfig, root string) Sidebar {
	link := func(l config.LinkEntry, style string) Entry {
		return Entry{Kind: KindLink, Label: l.Header, Href: root + l.Address, Style: style}
	}

	plugins := make([]Entry, 0, len(site.Plugins))
	for _, p := range site.Plugins {
		plugins = append(plugins, link(p, ""))
	}

	entries := []Entry{
		link(site.Intro, ""),
		link(site.Started, ""),
		{Kind: KindHeading, Label: PluginsHeading, Style: HeadingStyle},
		{Kind: KindGroup, Style: GroupStyle, Children: plugins},
		link(site.Batch, BatchStyle),
		link(site.Save, ""),
	}
	if site.Test != nil {
		entries = append(entries, link(*site.Test, ""))
	}

	return Sidebar{Title: site.Title, Entries: entries}
}

// Links returns every link of the sidebar in render order, descending into
// groups.
func (s Sidebar) Links() []Entry {
	var out []Entry
	var walk func([]Entry)
	walk = func(entries []Entry) {
		for _, e := range entries {
			switch e.Kind {
			case KindLink:
				out = append(out, e)
			case KindGroup:
				walk(e.Children)
			}
		}
	}
	walk(s.Entries)
	return out
}

// Group returns the first group entry, or false when there is none.
func (s Sidebar) Group() (Entry, bool) {
	for _, e := range s.Entries {
		if e.Kind == KindGroup {
			return e, true
		}
	}
	return Entry{}, false
}
