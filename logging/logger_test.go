package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/docnav/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "rendered sidebar",
				Data: logrus.Fields{
					"component": "nav",
					"links":     9,
				},
			},
			want: []string{"[INFO]", "[nav]", "rendered sidebar", "links=9"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "page skipped",
				Data:    logrus.Fields{"component": "site"},
			},
			want:    []string{"[WARN]", "page skipped"},
			notWant: []string{"[site]", "warning"},
		},
		{
			name:   "fields are sorted",
			config: FormatConfig{DisableTimestamp: true},
			entry: &logrus.Entry{
				Level:   logrus.DebugLevel,
				Message: "built",
				Data:    logrus.Fields{"zeta": 1, "alpha": 2},
			},
			want: []string{"[DEBUG] built alpha=2 zeta=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(tt.entry)
			require.NoError(t, err)

			s := string(out)
			assert.True(t, strings.HasSuffix(s, "\n"))
			for _, w := range tt.want {
				assert.Contains(t, s, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, s, nw)
			}
		})
	}
}

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	Configure(Config{Format: FormatConfig{StructuredToStderr: "never"}})

	a := NewLogger("build")
	b := NewLogger("build")
	c := NewLogger("serve")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "build", a.Data["component"])
}

func TestNewLoggerWritesToGlobalOutput(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	t.Cleanup(func() { SetGlobalOutput(os.Stderr) })

	Configure(Config{Level: "debug", Format: FormatConfig{Preset: "simple", StructuredToStderr: "always"}})

	logger := NewLogger("watch")
	logger.Debug("change detected")

	assert.Equal(t, "[DEBUG] change detected\n", buf.String())
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv("DOCNAV_LOG_LEVEL", "error")
	Configure(Config{Level: "debug", Format: FormatConfig{StructuredToStderr: "never"}})

	logger := NewLogger("env")
	assert.Equal(t, logrus.ErrorLevel, logger.Logger.GetLevel())
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	Configure(Config{Level: "chatty", Format: FormatConfig{StructuredToStderr: "never"}})

	logger := NewLogger("fallback")
	assert.Equal(t, logrus.InfoLevel, logger.Logger.GetLevel())
}

func TestJSONPreset(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	t.Cleanup(func() { SetGlobalOutput(os.Stderr) })

	Configure(Config{Format: FormatConfig{Preset: "json", StructuredToStderr: "always"}})

	NewLogger("json").WithField("page", "index.html").Info("wrote page")

	assert.Contains(t, buf.String(), `"page":"index.html"`)
	assert.Contains(t, buf.String(), `"component":"json"`)
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "docnav.log")
	Configure(Config{
		File:   FileSinkConfig{Enabled: true, Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	})

	NewLogger("file").Info("persisted")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "persisted")
}

func TestConfigureFromExtension(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte(`
preset: local
logging:
  level: warn
  format:
    structured_to_stderr: never
`), config.FormatYAML)
	require.NoError(t, err)

	require.NoError(t, ConfigureFrom(cfg))
	assert.Equal(t, logrus.WarnLevel, NewLogger("ext").Logger.GetLevel())
}

func TestSetOverridesWinOverConfig(t *testing.T) {
	Configure(Config{Level: "error", Format: FormatConfig{Preset: "simple"}})
	SetOverrides(true, true)
	t.Cleanup(func() { SetOverrides(false, false) })

	logger := NewLogger("override").Logger
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Success("built 3 pages")
	p.Warn("root has no trailing slash")
	p.Field("pages", 3)
	p.Path("output", "_site")
	p.Item("+", "index.html")
	p.Divider()
	p.Blank()

	out := buf.String()
	assert.Contains(t, out, "built 3 pages")
	assert.Contains(t, out, "root has no trailing slash")
	assert.Contains(t, out, "pages")
	assert.Contains(t, out, "_site")
	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, strings.Repeat("─", 60))
	assert.True(t, strings.HasSuffix(out, "\n\n"))
	assert.Equal(t, 7, strings.Count(out, "\n"))
}
