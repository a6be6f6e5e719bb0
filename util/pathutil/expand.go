package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand replaces a leading "~" or "~/" with the user's home directory.
// Other paths, and paths when the home directory is unknown, are returned
// unchanged.
func Expand(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
