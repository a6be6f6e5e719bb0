package config

import (
	"fmt"
	"path/filepath"

	"github.com/grovetools/docnav/util/pathutil"
	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// LinkEntry is one navigable page: a sidebar label and a page address
// relative to the root prefix.
type LinkEntry struct {
	Header  string `yaml:"header,omitempty" json:"header,omitempty" toml:"header,omitempty" jsonschema:"description=Label shown in the sidebar"`
	Address string `yaml:"address,omitempty" json:"address,omitempty" toml:"address,omitempty" jsonschema:"description=Page address relative to the root prefix (e.g. index.html)"`
}

// SiteConfig describes the sidebar of one documentation site.
// Test is optional; a nil Test renders no test link.
type SiteConfig struct {
	Title   string      `yaml:"title,omitempty" json:"title,omitempty" toml:"title,omitempty" jsonschema:"description=Page header title"`
	Intro   LinkEntry   `yaml:"intro,omitempty" json:"intro,omitempty" toml:"intro,omitempty" jsonschema:"description=Welcome page link"`
	Started LinkEntry   `yaml:"started,omitempty" json:"started,omitempty" toml:"started,omitempty" jsonschema:"description=Getting started page link"`
	Plugins []LinkEntry `yaml:"plugins,omitempty" json:"plugins,omitempty" toml:"plugins,omitempty" jsonschema:"description=Plugin pages listed under the Plugins heading in display order"`
	Batch   LinkEntry   `yaml:"batch,omitempty" json:"batch,omitempty" toml:"batch,omitempty" jsonschema:"description=Batching page link"`
	Save    LinkEntry   `yaml:"save,omitempty" json:"save,omitempty" toml:"save,omitempty" jsonschema:"description=Saving page link"`
	Test    *LinkEntry  `yaml:"test,omitempty" json:"test,omitempty" toml:"test,omitempty" jsonschema:"description=Optional library tests page link, rendered last"`
}

// BuildConfig controls how a site tree is rendered.
type BuildConfig struct {
	Source      string   `yaml:"source,omitempty" json:"source,omitempty" toml:"source,omitempty" jsonschema:"description=Directory holding the source pages (default: .)"`
	Output      string   `yaml:"output,omitempty" json:"output,omitempty" toml:"output,omitempty" jsonschema:"description=Directory the rendered site is written to (default: _site)"`
	Pages       []string `yaml:"pages,omitempty" json:"pages,omitempty" toml:"pages,omitempty" jsonschema:"description=Patterns selecting pages that receive the sidebar (default: **/*.html)"`
	Exclude     []string `yaml:"exclude,omitempty" json:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Patterns for files left out of the build entirely"`
	Concurrency int      `yaml:"concurrency,omitempty" json:"concurrency,omitempty" toml:"concurrency,omitempty" jsonschema:"description=Maximum number of pages rendered at once (default: 4)"`
}

// ServeConfig controls the preview server.
type ServeConfig struct {
	Addr       string `yaml:"addr,omitempty" json:"addr,omitempty" toml:"addr,omitempty" jsonschema:"description=Listen address of the preview server (default: 127.0.0.1:8080)"`
	LiveReload *bool  `yaml:"live_reload,omitempty" json:"live_reload,omitempty" toml:"live_reload,omitempty" jsonschema:"description=Reload open browsers after each rebuild (default: true)"`
}

// Config is the docnav.yml file.
type Config struct {
	Version string      `yaml:"version,omitempty" json:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Preset  string      `yaml:"preset,omitempty" json:"preset,omitempty" toml:"preset,omitempty" jsonschema:"enum=local,enum=pages,description=Built-in site used as the base for unset fields"`
	Root    *string     `yaml:"root,omitempty" json:"root,omitempty" toml:"root,omitempty" jsonschema:"description=Prefix prepended verbatim to every address"`
	Site    SiteConfig  `yaml:"site,omitempty" json:"site,omitempty" toml:"site,omitempty" jsonschema:"description=Sidebar contents"`
	Build   BuildConfig `yaml:"build,omitempty" json:"build,omitempty" toml:"build,omitempty" jsonschema:"description=Site build settings"`
	Serve   ServeConfig `yaml:"serve,omitempty" json:"serve,omitempty" toml:"serve,omitempty" jsonschema:"description=Preview server settings"`

	// Extensions holds unknown top-level sections (for example "logging").
	Extensions map[string]interface{} `yaml:"-" toml:"-" json:"extensions,omitempty"`
}

// knownKeys are the top-level keys decoded into Config fields.
var knownKeys = map[string]bool{
	"version": true,
	"preset":  true,
	"root":    true,
	"site":    true,
	"build":   true,
	"serve":   true,
}

// RootPrefix returns the configured root, or "" when none is set.
func (c *Config) RootPrefix() string {
	if c.Root == nil {
		return ""
	}
	return *c.Root
}

// LiveReloadEnabled reports whether the preview server injects the reload script.
func (c *Config) LiveReloadEnabled() bool {
	return c.Serve.LiveReload == nil || *c.Serve.LiveReload
}

// AnchorPaths expands a leading "~" in the build directories and makes
// relative ones relative to baseDir, the directory holding the config file.
func (c *Config) AnchorPaths(baseDir string) {
	c.Build.Source = pathutil.Expand(c.Build.Source)
	c.Build.Output = pathutil.Expand(c.Build.Output)
	if c.Build.Source != "" && !filepath.IsAbs(c.Build.Source) {
		c.Build.Source = filepath.Join(baseDir, c.Build.Source)
	}
	if c.Build.Output != "" && !filepath.IsAbs(c.Build.Output) {
		c.Build.Output = filepath.Join(baseDir, c.Build.Output)
	}
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Build.Source == "" {
		c.Build.Source = "."
	}
	if c.Build.Output == "" {
		c.Build.Output = "_site"
	}
	if len(c.Build.Pages) == 0 {
		c.Build.Pages = []string{"**/*.html"}
	}
	if c.Build.Concurrency <= 0 {
		c.Build.Concurrency = 4
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = "127.0.0.1:8080"
	}
	if c.Serve.LiveReload == nil {
		trueVal := true
		c.Serve.LiveReload = &trueVal
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded docnav.yml into the provided target struct. The target must be a
// pointer. A missing key leaves the target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
