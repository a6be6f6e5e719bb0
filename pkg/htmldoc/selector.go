package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// selector is a single compound selector: an optional tag followed by any
// number of .class and at most one #id.
type selector struct {
	tag     string
	id      string
	classes []string
}

func parseSelector(s string) (selector, error) {
	var sel selector
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " >+~[]:*,") {
		return sel, fmt.Errorf("unsupported selector %q", s)
	}

	i := strings.IndexAny(s, ".#")
	if i < 0 {
		sel.tag = strings.ToLower(s)
		return sel, nil
	}
	sel.tag = strings.ToLower(s[:i])

	rest := s[i:]
	for rest != "" {
		kind := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, ".#")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		rest = rest[end:]
		if name == "" {
			return sel, fmt.Errorf("empty name in selector %q", s)
		}
		if kind == '#' {
			if sel.id != "" {
				return sel, fmt.Errorf("multiple ids in selector %q", s)
			}
			sel.id = name
		} else {
			sel.classes = append(sel.classes, name)
		}
	}
	return sel, nil
}

func (m selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if m.tag != "" && n.Data != m.tag {
		return false
	}
	if m.id != "" {
		if id, _ := attr(n, "id"); id != m.id {
			return false
		}
	}
	if len(m.classes) > 0 {
		class, _ := attr(n, "class")
		have := strings.Fields(class)
		for _, want := range m.classes {
			if !contains(have, want) {
				return false
			}
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
