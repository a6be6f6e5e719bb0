package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizeForLookup creates a canonical, case-normalized path suitable for
// comparisons:
// 1. Makes the path absolute.
// 2. Evaluates any symbolic links.
// 3. On case-insensitive OSes (macOS, Windows), converts the path to lowercase.
func NormalizeForLookup(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	canonicalPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// The path may not exist yet.
		canonicalPath = absPath
	}

	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return strings.ToLower(canonicalPath), nil
	}
	return canonicalPath, nil
}

// Within reports whether path is parent or lies below it, after
// normalizing both.
func Within(parent, path string) (bool, error) {
	normParent, err := NormalizeForLookup(parent)
	if err != nil {
		return false, err
	}
	normPath, err := NormalizeForLookup(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(normParent, normPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}
