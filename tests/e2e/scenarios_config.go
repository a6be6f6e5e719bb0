package main

import (
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// InitAndCheckScenario writes a starter config and lints it.
func InitAndCheckScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "docnav-config-init-check",
		Description: "Verifies that init writes a loadable config and check reports missing pages.",
		Tags:        []string{"docnav", "config"},
		Steps: []harness.Step{
			harness.NewStep("Write a starter config", func(ctx *harness.Context) error {
				dir := ctx.NewDir("init-check")
				ctx.Set("init_dir", dir)
				if err := writeSite(dir); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "init", "--preset", "pages").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(0, result.ExitCode, "init should succeed"); err != nil {
					return err
				}

				content, err := fs.ReadString(filepath.Join(dir, "docnav.yml"))
				if err != nil {
					return err
				}
				return assert.Contains(content, "root: /GP-Tool/", "starter config should carry the preset root")
			}),
			harness.NewStep("Check reports missing pages", func(ctx *harness.Context) error {
				dir := ctx.GetString("init_dir")
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "check").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(0, result.ExitCode, "check without --strict should succeed"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "gprocess.html not found", "missing plugin page should be reported"); err != nil {
					return err
				}

				cmd = ctx.Command(binary, "check", "--strict").Dir(dir)
				result = cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				return assert.Equal(4, result.ExitCode, "strict check should exit with 4")
			}),
		},
	}
}

// ConfigOverrideScenario verifies that docnav.override.yml wins over docnav.yml.
func ConfigOverrideScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "docnav-config-override",
		Description: "Verifies that override files and presets are merged field by field.",
		Tags:        []string{"docnav", "config", "override"},
		Steps: []harness.Step{
			harness.NewStep("Merge project and override configs", func(ctx *harness.Context) error {
				dir := ctx.NewDir("config-override")
				if err := writeFiles(dir, map[string]string{
					"docnav.yml":          "preset: pages\nsite:\n  title: Project title\n",
					"docnav.override.yml": "root: ${DOCNAV_E2E_ROOT:-/preview/}\n",
				}); err != nil {
					return err
				}
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "config").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(0, result.ExitCode, "config should succeed"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "root: /preview/", "override root should win"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "title: Project title", "project title should win over the preset"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "address: tests.html", "preset test link should be kept")
			}),
		},
	}
}

// ConfigMissingScenario checks the exit code when no config can be found.
func ConfigMissingScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "docnav-config-missing",
		Description: "Commands that need a config exit with 2 when none is found.",
		Tags:        []string{"docnav", "config", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Build without a config", func(ctx *harness.Context) error {
				dir := ctx.NewDir("config-missing")
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(binary, "build").Dir(dir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if err := assert.Equal(2, result.ExitCode, "missing config should exit with 2"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "docnav init", "error should suggest init")
			}),
		},
	}
}
