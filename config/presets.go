package config

import (
	"sort"

	"github.com/grovetools/docnav/errors"
)

const (
	// PresetLocal is the GP-Tool site served from the domain root.
	PresetLocal = "local"
	// PresetPages is the GP-Tool site published under /GP-Tool/, with the
	// library tests page.
	PresetPages = "pages"
)

const gpToolTitle = "GP-Tool: An user friendly graphical interface to apply GP-FBM"

func gpToolSite() SiteConfig {
	return SiteConfig{
		Title:   gpToolTitle,
		Intro:   LinkEntry{Header: "Welcome", Address: "index.html"},
		Started: LinkEntry{Header: "Getting started", Address: "started.html"},
		Plugins: []LinkEntry{
			{Header: "Alignment", Address: "alignment.html"},
			{Header: "Denoise", Address: "denoise.html"},
			{Header: "Gaussian Process", Address: "gprocess.html"},
			{Header: "Movie", Address: "movie.html"},
			{Header: "Trajectory", Address: "trajectory.html"},
		},
		Batch: LinkEntry{Header: "Batching", Address: "batch.html"},
		Save:  LinkEntry{Header: "Saving", Address: "save.html"},
	}
}

var presets = map[string]func() Config{
	PresetLocal: func() Config {
		root := "/"
		return Config{Root: &root, Site: gpToolSite()}
	},
	PresetPages: func() Config {
		root := "/GP-Tool/"
		site := gpToolSite()
		site.Title = gpToolTitle + " (page under construction)"
		site.Test = &LinkEntry{Header: "Library tests", Address: "tests.html"}
		return Config{Root: &root, Site: site}
	},
}

// Preset returns a fresh copy of a built-in configuration.
func Preset(name string) (Config, error) {
	build, ok := presets[name]
	if !ok {
		return Config{}, errors.PresetNotFound(name, PresetNames())
	}
	return build(), nil
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset layers the config over its preset, if any. Explicit values in
// c win field by field.
func (c *Config) ApplyPreset() error {
	if c.Preset == "" {
		return nil
	}
	base, err := Preset(c.Preset)
	if err != nil {
		return err
	}
	*c = *mergeConfigs(&base, c)
	return nil
}
