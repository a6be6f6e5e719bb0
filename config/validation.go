package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/docnav/errors"
	"github.com/moby/patternmatcher"
)

// Validate checks the build settings. The sidebar itself is never validated
// here: an empty field renders as an empty label or link.
func (c *Config) Validate() error {
	if _, err := patternmatcher.New(c.Build.Pages); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid build.pages pattern").
			WithDetail("patterns", c.Build.Pages)
	}
	if _, err := patternmatcher.New(c.Build.Exclude); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid build.exclude pattern").
			WithDetail("patterns", c.Build.Exclude)
	}
	if c.Build.Source != "" && filepath.Clean(c.Build.Source) == filepath.Clean(c.Build.Output) {
		return errors.New(errors.ErrCodeConfigValidation, "build.output must differ from build.source").
			WithDetail("source", c.Build.Source)
	}
	return nil
}

// Issue is a lint finding for a site configuration.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Lint reports likely mistakes in a site configuration. Findings are
// advisory: rendering proceeds regardless. When sourceDir is non-empty,
// link targets are checked against files in it.
func Lint(site SiteConfig, root, sourceDir string) []Issue {
	var issues []Issue

	if root != "" && !strings.HasSuffix(root, "/") {
		issues = append(issues, Issue{
			Field:   "root",
			Message: fmt.Sprintf("%q does not end in '/'; addresses are appended verbatim", root),
		})
	}
	if site.Title == "" {
		issues = append(issues, Issue{Field: "site.title", Message: "title is empty"})
	}

	seen := make(map[string]string)
	check := func(field string, link LinkEntry) {
		if link.Header == "" {
			issues = append(issues, Issue{Field: field + ".header", Message: "header is empty"})
		}
		if link.Address == "" {
			issues = append(issues, Issue{Field: field + ".address", Message: "address is empty"})
			return
		}
		if !isRelative(link.Address) {
			issues = append(issues, Issue{
				Field:   field + ".address",
				Message: fmt.Sprintf("%q is not a relative address", link.Address),
			})
			return
		}
		if prev, ok := seen[link.Address]; ok {
			issues = append(issues, Issue{
				Field:   field + ".address",
				Message: fmt.Sprintf("%q is also used by %s", link.Address, prev),
			})
		} else {
			seen[link.Address] = field
		}
		if sourceDir != "" {
			target := filepath.Join(sourceDir, filepath.FromSlash(stripFragment(link.Address)))
			if _, err := os.Stat(target); err != nil {
				issues = append(issues, Issue{
					Field:   field + ".address",
					Message: fmt.Sprintf("page %s not found", target),
				})
			}
		}
	}

	check("site.intro", site.Intro)
	check("site.started", site.Started)
	for i, plugin := range site.Plugins {
		check(fmt.Sprintf("site.plugins[%d]", i), plugin)
	}
	check("site.batch", site.Batch)
	check("site.save", site.Save)
	if site.Test != nil {
		check("site.test", *site.Test)
	}

	return issues
}

func isRelative(address string) bool {
	if strings.HasPrefix(address, "/") {
		return false
	}
	u, err := url.Parse(address)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func stripFragment(address string) string {
	if i := strings.IndexAny(address, "?#"); i >= 0 {
		return address[:i]
	}
	return address
}
