package htmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/pkg/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Denoise</title></head>
<body>
<header></header>
<nav class="sidebar explorer" id="nav"></nav>
<main><p>content</p></main>
</body>
</html>`

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestQuery(t *testing.T) {
	doc := mustParse(t, page)

	tests := []struct {
		selector string
		wantTag  string
		found    bool
	}{
		{"header", "header", true},
		{".explorer", "nav", true},
		{".sidebar.explorer", "nav", true},
		{"nav.explorer", "nav", true},
		{"#nav", "nav", true},
		{"nav#nav.explorer", "nav", true},
		{"HEADER", "header", true},
		{".missing", "", false},
		{"div.explorer", "", false},
		{"main p", "", false},
		{"", "", false},
		{".", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			el, ok := doc.Query(tt.selector)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantTag, el.(*Element).Tag())
			}
		})
	}
}

func TestQueryAllInDocumentOrder(t *testing.T) {
	doc := mustParse(t, `<body><a href="1">one</a><div><a href="2">two</a></div><a href="3">three</a></body>`)

	var got []string
	for _, el := range doc.QueryAll("a") {
		href, _ := el.Attr("href")
		got = append(got, href)
	}
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestElementMutation(t *testing.T) {
	doc := mustParse(t, page)

	a := doc.CreateElement("a").(*Element)
	a.SetAttr("href", "/x.html")
	a.SetAttr("href", "/y.html")
	a.SetText("first")
	a.SetText("<b>second</b>")

	header, ok := doc.Query("header")
	require.True(t, ok)
	header.AppendChild(a)

	href, ok := a.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "/y.html", href)
	assert.Equal(t, "<b>second</b>", a.Text())

	out := doc.String()
	assert.Contains(t, out, `<header><a href="/y.html">&lt;b&gt;second&lt;/b&gt;</a></header>`)
}

func TestRenderSidebarIntoPage(t *testing.T) {
	doc := mustParse(t, page)
	site := config.SiteConfig{
		Title:   "GP-Tool (page under construction)",
		Intro:   config.LinkEntry{Header: "Welcome", Address: "index.html"},
		Started: config.LinkEntry{Header: "Getting started", Address: "started.html"},
		Plugins: []config.LinkEntry{{Header: "Alignment", Address: "alignment.html"}},
		Batch:   config.LinkEntry{Header: "Batching", Address: "batch.html"},
		Save:    config.LinkEntry{Header: "Saving", Address: "save.html"},
		Test:    &config.LinkEntry{Header: "Library tests", Address: "tests.html"},
	}

	require.NoError(t, nav.RenderConfig(site, "/GP-Tool/", doc))

	out := doc.String()
	assert.Contains(t, out, `<header><h1>GP-Tool (page under construction)</h1></header>`)
	assert.Contains(t, out, `<h2 style="color: white; padding-top: 1rem;">Plugins</h2>`)
	assert.Contains(t, out, `<div style="margin-left: 1rem;"><a href="/GP-Tool/alignment.html">Alignment</a></div>`)
	assert.Contains(t, out, `<a href="/GP-Tool/batch.html" style="padding-top: 1rem;">Batching</a>`)

	explorer, ok := doc.Query(".explorer")
	require.True(t, ok)
	children := explorer.(*Element).Children()
	require.Len(t, children, 7)
	last, _ := children[6].Attr("href")
	assert.Equal(t, "/GP-Tool/tests.html", last)
}

func TestRenderMissingExplorer(t *testing.T) {
	doc := mustParse(t, `<html><body><header></header></body></html>`)

	err := nav.RenderConfig(config.SiteConfig{Title: "T"}, "/", doc)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeElementNotFound, errors.GetCode(err))
	assert.Contains(t, doc.String(), "<h1>T</h1>")
}

func TestRenderWritesLabelsAsText(t *testing.T) {
	doc := mustParse(t, page)
	site := config.SiteConfig{
		Title: "A <b>bold</b> title",
		Intro: config.LinkEntry{Header: "<i>Welcome</i>", Address: "index.html"},
	}

	require.NoError(t, nav.RenderConfig(site, "/", doc))

	out := doc.String()
	assert.Contains(t, out, "<h1>A &lt;b&gt;bold&lt;/b&gt; title</h1>")
	assert.Contains(t, out, `<a href="/index.html">&lt;i&gt;Welcome&lt;/i&gt;</a>`)
	assert.NotContains(t, out, "<b>")
}

func TestInjectScript(t *testing.T) {
	doc := mustParse(t, page)
	assert.True(t, doc.InjectScript(`if (a < b) { reload(); }`))

	out := doc.String()
	assert.Contains(t, out, `<script>if (a < b) { reload(); }</script></body>`)
}

func TestAppendChildMovesNode(t *testing.T) {
	doc := mustParse(t, page)
	header, _ := doc.Query("header")
	main, _ := doc.Query("main")

	p := doc.CreateElement("p")
	header.AppendChild(p)
	main.AppendChild(p)

	assert.Empty(t, header.(*Element).Children())
	assert.Len(t, main.(*Element).Children(), 2)
}

func TestParseAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(src, []byte(page), 0644))

	doc, err := ParseFile(src)
	require.NoError(t, err)

	dst := filepath.Join(dir, "out", "nested", "index.html")
	require.NoError(t, doc.WriteFile(dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<nav class="sidebar explorer" id="nav">`)

	_, err = ParseFile(filepath.Join(dir, "missing.html"))
	assert.Equal(t, errors.ErrCodePageRead, errors.GetCode(err))
}
