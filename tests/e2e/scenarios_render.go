package main

import (
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// RenderPresetScenario renders a page with the built-in presets.
func RenderPresetScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "docnav-render-preset",
		Description: "Renders the local and pages presets into a single page.",
		Tags:        []string{"docnav", "render"},
		Steps: []harness.Step{
			harness.NewStep("Render with the local preset", func(ctx *harness.Context) error {
				dir := ctx.NewDir("render-local")
				if err := writeSite(dir); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "render", "index.html", "--preset", "local").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "render should succeed"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, `<a href="/index.html">Welcome</a>`, "links should use the '/' root"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, `<h2 style="color: white; padding-top: 1rem;">Plugins</h2>`, "plugins heading should be styled"); err != nil {
					return err
				}
				return assert.NotContains(result.Stdout, "Library tests", "local preset has no test link")
			}),
			harness.NewStep("Render in place with the pages preset", func(ctx *harness.Context) error {
				dir := ctx.NewDir("render-pages")
				if err := writeSite(dir); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "render", "started.html", "--preset", "pages", "--in-place").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(0, result.ExitCode, "render should succeed"); err != nil {
					return err
				}

				content, err := fs.ReadString(filepath.Join(dir, "started.html"))
				if err != nil {
					return err
				}
				if err := assert.Contains(content, "(page under construction)</h1>", "title should be in the header"); err != nil {
					return err
				}
				return assert.Contains(content, `<a href="/GP-Tool/tests.html">Library tests</a>`, "test link should be last")
			}),
		},
	}
}

// RenderMissingContainerScenario checks the exit code for pages without a sidebar.
func RenderMissingContainerScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "docnav-render-missing-container",
		Description: "Rendering into a page without a header fails with the render exit code.",
		Tags:        []string{"docnav", "render", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Render into a bare page", func(ctx *harness.Context) error {
				dir := ctx.NewDir("render-bare")
				if err := writeFiles(dir, map[string]string{
					"bare.html": "<html><body><p>no sidebar</p></body></html>",
				}); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "render", "bare.html", "--preset", "local").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(3, result.ExitCode, "missing container should exit with 3"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "'header'", "error should name the selector")
			}),
		},
	}
}
