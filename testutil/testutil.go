package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Page is a minimal documentation page with both sidebar containers.
const Page = `<!DOCTYPE html>
<html>
<head><title>page</title></head>
<body>
<header></header>
<nav class="explorer"></nav>
<main>content</main>
</body>
</html>
`

// BarePage has neither a header nor an explorer container.
const BarePage = `<!DOCTYPE html>
<html><head></head><body><p>no sidebar here</p></body></html>
`

// WriteFiles creates files relative to dir. Keys are slash-separated paths.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// WriteSite creates a small documentation tree in a temp dir and returns it.
func WriteSite(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteFiles(t, dir, map[string]string{
		"index.html":             Page,
		"started.html":           Page,
		"plugins/alignment.html": Page,
		"plugins/denoise.html":   Page,
		"css/style.css":          "body { color: black; }\n",
		"img/logo.png":           "\x89PNG\r\n",
	})
	return dir
}

// ReadFile returns the content of a file relative to dir.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

// Chdir changes the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}
