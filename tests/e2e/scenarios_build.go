package main

import (
	"os"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

const buildYAML = `version: "1.0"
root: /docs/
site:
  title: Docs
  intro: {header: Welcome, address: index.html}
  started: {header: Start, address: started.html}
  plugins:
    - {header: Denoise, address: denoise.html}
  batch: {header: Batching, address: batch.html}
  save: {header: Saving, address: save.html}
`

// BuildSiteScenario builds a whole site from docnav.yml.
func BuildSiteScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "docnav-build-site",
		Description: "Renders every page and copies assets into _site.",
		Tags:        []string{"docnav", "build"},
		Steps: []harness.Step{
			harness.NewStep("Build the site", func(ctx *harness.Context) error {
				dir := ctx.NewDir("build-site")
				ctx.Set("site_dir", dir)
				if err := writeSite(dir); err != nil {
					return err
				}
				if err := fs.WriteString(filepath.Join(dir, "docnav.yml"), buildYAML); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "build").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(0, result.ExitCode, "build should succeed"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "3 pages, 1 assets", "summary should count files"); err != nil {
					return err
				}

				content, err := fs.ReadString(filepath.Join(dir, "_site", "denoise.html"))
				if err != nil {
					return err
				}
				if err := assert.Contains(content, `<a href="/docs/denoise.html">Denoise</a>`, "plugin link should be rendered"); err != nil {
					return err
				}
				css, err := fs.ReadString(filepath.Join(dir, "_site", "css", "style.css"))
				if err != nil {
					return err
				}
				return assert.Equal("body { color: black; }\n", css, "assets should be copied unchanged")
			}),
			harness.NewStep("Rebuild from a subdirectory", func(ctx *harness.Context) error {
				dir := ctx.GetString("site_dir")
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "build", "--clean", "--json").Dir(filepath.Join(dir, "css"))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(0, result.ExitCode, "build should succeed"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, `"cleaned": true`, "report should record the clean")
			}),
		},
	}
}

// BuildExcludeScenario checks that excluded pages are neither rendered nor copied.
func BuildExcludeScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "docnav-build-exclude",
		Description: "Pages without sidebar containers fail the build unless excluded.",
		Tags:        []string{"docnav", "build", "exclude"},
		Steps: []harness.Step{
			harness.NewStep("Build fails on a bare page", func(ctx *harness.Context) error {
				dir := ctx.NewDir("build-exclude")
				ctx.Set("exclude_dir", dir)
				if err := writeSite(dir); err != nil {
					return err
				}
				if err := writeFiles(dir, map[string]string{
					"docnav.yml":       "preset: local\n",
					"drafts/note.html": "<html><body>draft</body></html>",
				}); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "build").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(3, result.ExitCode, "bare page should fail the build"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "drafts/note.html", "error should name the page")
			}),
			harness.NewStep("Build succeeds with the page excluded", func(ctx *harness.Context) error {
				dir := ctx.GetString("exclude_dir")
				if err := fs.WriteString(filepath.Join(dir, "docnav.yml"), "preset: local\nbuild:\n  exclude:\n    - drafts\n"); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "build", "--clean").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(0, result.ExitCode, "build should succeed"); err != nil {
					return err
				}
				_, statErr := os.Stat(filepath.Join(dir, "_site", "drafts"))
				return assert.Equal(true, os.IsNotExist(statErr), "excluded directory should not be copied")
			}),
		},
	}
}
