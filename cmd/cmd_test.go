package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/pkg/site"
	"github.com/grovetools/docnav/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectConfig = `version: "1.0"
root: /docs/
site:
  title: Docs
  intro: {header: Welcome, address: index.html}
  started: {header: Start, address: started.html}
  plugins:
    - {header: Alignment, address: plugins/alignment.html}
  batch: {header: Batching, address: batch.html}
  save: {header: Saving, address: save.html}
build:
  output: _site
`

func TestMain(m *testing.M) {
	os.Setenv("DOCNAV_LOG_LEVEL", "error")
	cli.DisableColor()
	os.Exit(m.Run())
}

// run executes the root command and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return out.String(), err
}

// writeProject creates a site with a docnav.yml and returns the site dir and
// the config path.
func writeProject(t *testing.T) (string, string) {
	t.Helper()

	dir := testutil.WriteSite(t)
	testutil.WriteFiles(t, dir, map[string]string{"docnav.yml": projectConfig})
	return dir, filepath.Join(dir, "docnav.yml")
}

func TestRenderStdinWithPreset(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	out, err := run(t, testutil.Page, "render", "--preset", "pages")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1>GP-Tool: An user friendly graphical interface to apply GP-FBM (page under construction)</h1>`)
	assert.Contains(t, out, `<a href="/GP-Tool/index.html">Welcome</a>`)
	assert.Contains(t, out, `<a href="/GP-Tool/tests.html">Library tests</a>`)
}

func TestRenderFileWithConfig(t *testing.T) {
	dir, cfgPath := writeProject(t)

	out, err := run(t, "", "render", filepath.Join(dir, "index.html"), "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, `<header><h1>Docs</h1></header>`)
	assert.Contains(t, out, `<div style="margin-left: 1rem;"><a href="/docs/plugins/alignment.html">Alignment</a></div>`)
	assert.NotContains(t, out, "Library tests")
}

func TestRenderRootFlagOverridesConfig(t *testing.T) {
	dir, cfgPath := writeProject(t)

	out, err := run(t, "", "render", filepath.Join(dir, "index.html"), "--config", cfgPath, "--root=")
	require.NoError(t, err)
	assert.Contains(t, out, `<a href="index.html">Welcome</a>`)

	out, err = run(t, "", "render", filepath.Join(dir, "index.html"), "--config", cfgPath, "--root", "https://example.org/x")
	require.NoError(t, err)
	assert.Contains(t, out, `<a href="https://example.org/xindex.html">Welcome</a>`)
}

func TestRenderInPlace(t *testing.T) {
	dir, cfgPath := writeProject(t)
	page := filepath.Join(dir, "started.html")

	out, err := run(t, "", "render", page, "--config", cfgPath, "--in-place")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, testutil.ReadFile(t, dir, "started.html"), `<a href="/docs/save.html">Saving</a>`)

	_, err = run(t, "", "render", "--config", cfgPath, "--in-place")
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	_, err = run(t, "", "render", page, "--config", cfgPath, "-i", "-o", filepath.Join(dir, "x.html"))
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestRenderOutputFile(t *testing.T) {
	dir, cfgPath := writeProject(t)

	_, err := run(t, "", "render", filepath.Join(dir, "index.html"), "--config", cfgPath, "-o", filepath.Join(dir, "out", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, dir, "out/index.html"), "<h1>Docs</h1>")
	assert.NotContains(t, testutil.ReadFile(t, dir, "index.html"), "<h1>")
}

func TestRenderMissingContainer(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	_, err := run(t, testutil.BarePage, "render", "--preset", "local")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeElementNotFound, errors.GetCode(err))
	assert.Equal(t, cli.ExitRender, cli.ExitCode(err))
}

func TestRenderWithoutConfigOrPreset(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	_, err := run(t, testutil.Page, "render")
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestExplicitMissingConfigWinsOverPreset(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	_, err := run(t, testutil.Page, "render", "--preset", "local", "--config", "missing.yml")
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestUnknownPreset(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	_, err := run(t, testutil.Page, "render", "--preset", "gh")
	assert.Equal(t, errors.ErrCodePresetNotFound, errors.GetCode(err))
}

func TestEntries(t *testing.T) {
	_, cfgPath := writeProject(t)

	out, err := run(t, "", "entries", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Docs")
	assert.Contains(t, out, "Plugins")
	assert.Contains(t, out, "/docs/plugins/alignment.html")

	out, err = run(t, "", "entries", "--config", cfgPath, "--json")
	require.NoError(t, err)

	var sb struct {
		Title   string `json:"title"`
		Entries []struct {
			Kind     string `json:"kind"`
			Label    string `json:"label"`
			Href     string `json:"href"`
			Children []struct {
				Href string `json:"href"`
			} `json:"children"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &sb))
	assert.Equal(t, "Docs", sb.Title)

	var kinds []string
	for _, e := range sb.Entries {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []string{"link", "link", "heading", "group", "link", "link"}, kinds)
	assert.Equal(t, "/docs/plugins/alignment.html", sb.Entries[3].Children[0].Href)
}

func TestBuild(t *testing.T) {
	dir, cfgPath := writeProject(t)

	out, err := run(t, "", "build", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Built 4 pages, 2 assets")

	assert.Contains(t, testutil.ReadFile(t, dir, "_site/plugins/denoise.html"), "<h1>Docs</h1>")
	assert.Equal(t, "body { color: black; }\n", testutil.ReadFile(t, dir, "_site/css/style.css"))
	assert.NoFileExists(t, filepath.Join(dir, "_site", "docnav.yml"))
}

func TestBuildJSONReport(t *testing.T) {
	_, cfgPath := writeProject(t)

	out, err := run(t, "", "build", "--config", cfgPath, "--json", "--dry-run")
	require.NoError(t, err)

	var report site.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, []string{"index.html", "plugins/alignment.html", "plugins/denoise.html", "started.html"}, report.Pages)
	assert.Equal(t, []string{"css/style.css", "img/logo.png"}, report.Assets)
	assert.NoDirExists(t, report.Output)
}

func TestBuildOutputFlag(t *testing.T) {
	dir, cfgPath := writeProject(t)
	out := filepath.Join(t.TempDir(), "public")

	_, err := run(t, "", "build", "--config", cfgPath, "--output", out, "--preset", "pages")
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, out, "index.html"), `<a href="/GP-Tool/tests.html">Library tests</a>`)
	assert.NoDirExists(t, filepath.Join(dir, "_site"))
}

func TestCheck(t *testing.T) {
	_, cfgPath := writeProject(t)

	out, err := run(t, "", "check", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "batch.html not found")
	assert.Contains(t, out, "2 issue(s)")

	_, err = run(t, "", "check", "--config", cfgPath, "--strict")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLintWarnings, errors.GetCode(err))
	assert.Equal(t, cli.ExitWarning, cli.ExitCode(err))
}

func TestCheckJSON(t *testing.T) {
	dir, cfgPath := writeProject(t)
	testutil.WriteFiles(t, dir, map[string]string{"batch.html": testutil.Page, "save.html": testutil.Page})

	out, err := run(t, "", "check", "--config", cfgPath, "--json", "--strict")
	require.NoError(t, err)

	var issues []config.Issue
	require.NoError(t, json.Unmarshal([]byte(out), &issues))
	assert.Empty(t, issues)
}

func TestInit(t *testing.T) {
	for _, format := range []config.Format{config.FormatYAML, config.FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()

			out, err := run(t, "", "init", "--dir", dir, "--preset", "pages", "--format", string(format))
			require.NoError(t, err)
			assert.Contains(t, out, "from preset 'pages'")

			name := "docnav.yml"
			if format == config.FormatTOML {
				name = "docnav.toml"
			}
			cfg, err := config.Load(filepath.Join(dir, name))
			require.NoError(t, err)

			preset, err := config.Preset(config.PresetPages)
			require.NoError(t, err)
			assert.Equal(t, preset.Site, cfg.Site)
			assert.Equal(t, "/GP-Tool/", cfg.RootPrefix())

			_, err = run(t, "", "init", "--dir", dir, "--format", string(format))
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

			_, err = run(t, "", "init", "--dir", dir, "--format", string(format), "--force")
			assert.NoError(t, err)
		})
	}
}

func TestInitUnknownFormat(t *testing.T) {
	_, err := run(t, "", "init", "--dir", t.TempDir(), "--format", "ini")
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestSchema(t *testing.T) {
	out, err := run(t, "", "schema")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	out, err = run(t, "", "schema", "--reflect")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "live_reload")
}

func TestConfigCommand(t *testing.T) {
	_, cfgPath := writeProject(t)

	out, err := run(t, "", "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# Source: "+cfgPath)
	assert.Contains(t, out, "title: Docs")
	assert.Contains(t, out, "concurrency: 4")

	out, err = run(t, "", "config", "--config", cfgPath, "--json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "/docs/", cfg.RootPrefix())
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "_site"), cfg.Build.Output)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "docnav "))
}

func TestHelpListsCommands(t *testing.T) {
	out, err := run(t, "", "--help")
	require.NoError(t, err)
	for _, name := range []string{"render", "entries", "build", "watch", "serve", "check", "init", "config", "schema", "version"} {
		assert.Contains(t, out, name)
	}
}

func TestBuildTiming(t *testing.T) {
	_, cfgPath := writeProject(t)

	out, err := run(t, "", "build", "--config", cfgPath, "--timing")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Timing Profile ---")
	assert.Contains(t, out, "- render page x4")
}

func TestBuildDryRunListsPlan(t *testing.T) {
	_, cfgPath := writeProject(t)

	out, err := run(t, "", "build", "--config", cfgPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "render plugins/denoise.html")
	assert.Contains(t, out, "css/style.css")
	assert.Contains(t, out, strings.Repeat("─", 60))
	assert.Contains(t, out, "Dry run: 4 pages, 2 assets")
}
