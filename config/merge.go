package config

import (
	"os"
	"path/filepath"

	"github.com/grovetools/docnav/errors"
	"github.com/sirupsen/logrus"
)

// overrideFileNames are looked up next to the project file, in order.
var overrideFileNames = []string{
	"docnav.override.yml",
	"docnav.override.yaml",
	"docnav.override.toml",
	".docnav.override.yml",
	".docnav.override.yaml",
}

// LoadWithOverrides loads the project file, merges any override files found
// next to it, then resolves the preset and defaults.
func LoadWithOverrides(baseFile string, logger *logrus.Logger) (*Config, error) {
	config, err := loadRaw(baseFile)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(baseFile)
	for _, name := range overrideFileNames {
		overridePath := filepath.Join(dir, name)
		if _, err := os.Stat(overridePath); err != nil {
			continue
		}

		logger.WithField("path", overridePath).Debug("Loading local override configuration")
		override, err := loadRaw(overridePath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to load override file").
				WithDetail("path", overridePath)
		}
		config = mergeConfigs(config, override)
	}

	if err := config.Resolve(); err != nil {
		return nil, err
	}
	return config, nil
}

// mergeConfigs merges override configuration into base. Non-empty values in
// override win; a non-empty plugin list replaces the base list.
func mergeConfigs(base, override *Config) *Config {
	result := base.clone()

	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Preset != "" {
		result.Preset = override.Preset
	}
	if override.Root != nil {
		root := *override.Root
		result.Root = &root
	}

	result.Site = mergeSite(base.Site, override.Site)

	// Merge build
	if override.Build.Source != "" {
		result.Build.Source = override.Build.Source
	}
	if override.Build.Output != "" {
		result.Build.Output = override.Build.Output
	}
	if len(override.Build.Pages) > 0 {
		result.Build.Pages = append([]string(nil), override.Build.Pages...)
	}
	if len(override.Build.Exclude) > 0 {
		result.Build.Exclude = append([]string(nil), override.Build.Exclude...)
	}
	if override.Build.Concurrency > 0 {
		result.Build.Concurrency = override.Build.Concurrency
	}

	// Merge serve
	if override.Serve.Addr != "" {
		result.Serve.Addr = override.Serve.Addr
	}
	if override.Serve.LiveReload != nil {
		live := *override.Serve.LiveReload
		result.Serve.LiveReload = &live
	}

	// Merge extensions key by key
	if len(base.Extensions) > 0 || len(override.Extensions) > 0 {
		result.Extensions = make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for k, v := range base.Extensions {
			result.Extensions[k] = v
		}
		for k, v := range override.Extensions {
			result.Extensions[k] = v
		}
	}

	return &result
}

// clone copies c so that no pointer or slice is shared with it.
func (c *Config) clone() Config {
	result := *c
	if c.Root != nil {
		root := *c.Root
		result.Root = &root
	}
	if c.Site.Plugins != nil {
		result.Site.Plugins = append([]LinkEntry(nil), c.Site.Plugins...)
	}
	if c.Site.Test != nil {
		test := *c.Site.Test
		result.Site.Test = &test
	}
	if c.Build.Pages != nil {
		result.Build.Pages = append([]string(nil), c.Build.Pages...)
	}
	if c.Build.Exclude != nil {
		result.Build.Exclude = append([]string(nil), c.Build.Exclude...)
	}
	if c.Serve.LiveReload != nil {
		live := *c.Serve.LiveReload
		result.Serve.LiveReload = &live
	}
	return result
}

func mergeSite(base, override SiteConfig) SiteConfig {
	result := base
	if override.Title != "" {
		result.Title = override.Title
	}
	result.Intro = mergeLink(base.Intro, override.Intro)
	result.Started = mergeLink(base.Started, override.Started)
	if len(override.Plugins) > 0 {
		result.Plugins = append([]LinkEntry(nil), override.Plugins...)
	} else if base.Plugins != nil {
		result.Plugins = append([]LinkEntry(nil), base.Plugins...)
	}
	result.Batch = mergeLink(base.Batch, override.Batch)
	result.Save = mergeLink(base.Save, override.Save)

	switch {
	case override.Test != nil && base.Test != nil:
		merged := mergeLink(*base.Test, *override.Test)
		result.Test = &merged
	case override.Test != nil:
		test := *override.Test
		result.Test = &test
	case base.Test != nil:
		test := *base.Test
		result.Test = &test
	}
	return result
}

func mergeLink(base, override LinkEntry) LinkEntry {
	if override.Header != "" {
		base.Header = override.Header
	}
	if override.Address != "" {
		base.Address = override.Address
	}
	return base
}
