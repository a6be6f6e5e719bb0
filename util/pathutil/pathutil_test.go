package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/docs/site", filepath.Join(home, "docs", "site")},
		{"~docs", "~docs"},
		{"docs/~", "docs/~"},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.in))
		})
	}
}

func TestWithin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "sub"), 0755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "src"), link))

	tests := []struct {
		name   string
		parent string
		path   string
		want   bool
	}{
		{"same", filepath.Join(dir, "src"), filepath.Join(dir, "src"), true},
		{"child", filepath.Join(dir, "src"), filepath.Join(dir, "src", "sub"), true},
		{"parent", filepath.Join(dir, "src", "sub"), filepath.Join(dir, "src"), false},
		{"sibling with prefix", filepath.Join(dir, "src"), filepath.Join(dir, "src2"), false},
		{"through symlink", link, filepath.Join(dir, "src", "sub"), true},
		{"missing path", filepath.Join(dir, "src"), filepath.Join(dir, "src", "new"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Within(tt.parent, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
