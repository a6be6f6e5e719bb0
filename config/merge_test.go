package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOverrideMerging tests project -> override merging.
func TestOverrideMerging(t *testing.T) {
	projectDir := t.TempDir()

	projectConfig := `
version: "1.0"
root: /
site:
  title: GP-Tool
  intro: {header: Welcome, address: index.html}
  plugins:
    - {header: Alignment, address: alignment.html}
    - {header: Denoise, address: denoise.html}
  save: {header: Saving, address: save.html}
build:
  source: docs
  exclude: ["drafts/**"]
analytics:
  enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docnav.yml"), []byte(projectConfig), 0644))

	overrideConfig := `
root = "/GP-Tool/"

[site.save]
address = "saving.html"

[[site.plugins]]
header = "Movie"
address = "movie.html"

[site.test]
header = "Library tests"
address = "tests.html"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docnav.override.toml"), []byte(overrideConfig), 0644))

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(os.Stderr)

	cfg, err := LoadFromWithLogger(projectDir, logger)
	require.NoError(t, err)

	assert.Equal(t, "/GP-Tool/", cfg.RootPrefix(), "override root should win")
	assert.Equal(t, "GP-Tool", cfg.Site.Title, "project title should be kept")
	assert.Equal(t, LinkEntry{Header: "Saving", Address: "saving.html"}, cfg.Site.Save, "links merge field by field")
	assert.Equal(t, []LinkEntry{{Header: "Movie", Address: "movie.html"}}, cfg.Site.Plugins, "override plugins replace the list")
	require.NotNil(t, cfg.Site.Test)
	assert.Equal(t, "tests.html", cfg.Site.Test.Address)
	assert.Equal(t, []string{"drafts/**"}, cfg.Build.Exclude)

	assert.Contains(t, cfg.Extensions, "analytics")
	assert.Contains(t, cfg.Extensions, "logging")
}

func TestOverrideParseFailure(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docnav.yml"), []byte("root: /\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docnav.override.yml"), []byte("site: [\n"), 0644))

	_, err := LoadFrom(projectDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "override")
}

func TestMergeConfigsDoesNotAlias(t *testing.T) {
	root := "/"
	base := &Config{
		Root: &root,
		Site: SiteConfig{
			Plugins: []LinkEntry{{Header: "Alignment", Address: "alignment.html"}},
			Test:    &LinkEntry{Header: "Library tests", Address: "tests.html"},
		},
	}

	merged := mergeConfigs(base, &Config{})
	merged.Site.Plugins[0].Header = "changed"
	merged.Site.Test.Header = "changed"
	*merged.Root = "changed"

	assert.Equal(t, "Alignment", base.Site.Plugins[0].Header)
	assert.Equal(t, "Library tests", base.Site.Test.Header)
	assert.Equal(t, "/", root)
}

func TestMergeTestLink(t *testing.T) {
	base := &Config{Site: SiteConfig{Test: &LinkEntry{Header: "Library tests", Address: "tests.html"}}}
	override := &Config{Site: SiteConfig{Test: &LinkEntry{Address: "library-tests.html"}}}

	merged := mergeConfigs(base, override)
	require.NotNil(t, merged.Site.Test)
	assert.Equal(t, LinkEntry{Header: "Library tests", Address: "library-tests.html"}, *merged.Site.Test)
}
