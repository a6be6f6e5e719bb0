package main

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/grovetools/tend/pkg/fs"
)

// page is a documentation page carrying both sidebar containers.
const page = `<!DOCTYPE html>
<html>
<head><title>page</title></head>
<body>
<header></header>
<nav class="explorer"></nav>
<main>content</main>
</body>
</html>
`

// findDocnavBinary finds the docnav binary under test.
// It relies on the Makefile setting the PATH to include the local ./bin directory.
func findDocnavBinary() (string, error) {
	path, err := exec.LookPath("docnav")
	if err != nil {
		return "", fmt.Errorf("could not find 'docnav' binary in PATH. Ensure 'make test-e2e' is used")
	}
	return path, nil
}

// writeFiles creates files relative to dir.
func writeFiles(dir string, files map[string]string) error {
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := fs.CreateDir(filepath.Dir(path)); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := fs.WriteString(path, content); err != nil {
			return err
		}
	}
	return nil
}

// writeSite creates a small documentation tree.
func writeSite(dir string) error {
	return writeFiles(dir, map[string]string{
		"index.html":    page,
		"started.html":  page,
		"denoise.html":  page,
		"css/style.css": "body { color: black; }\n",
	})
}
