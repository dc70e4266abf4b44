package strip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patterns = []string{".git*", "*.md", ".yamllint", ".ansible-lint"}

func buildTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{".gitignore", true},
		{".github", true},
		{"README.md", true},
		{"CHANGELOG.md", true},
		{".yamllint", true},
		{".ansible-lint", true},
		{"main.yml", false},
		{"git", false},
		{"notes.mdx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(patterns, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name           string
		preserveReadme bool
		kept           []string
		gone           []string
	}{
		{
			name: "strip everything matching",
			kept: []string{"tasks/main.yml", "docs/guide.txt", "meta/main.yml"},
			gone: []string{".git", ".gitignore", ".github", "README.md", "docs/README.md", "docs/usage.md", ".yamllint", "tasks/.ansible-lint"},
		},
		{
			name:           "preserve readme",
			preserveReadme: true,
			kept:           []string{"README.md", "docs/README.md", "tasks/main.yml"},
			gone:           []string{".git", ".github", "docs/usage.md", ".yamllint"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "repo")
			buildTree(t, root, []string{
				".git/HEAD",
				".git/objects/ab/cdef",
				".gitignore",
				".github/workflows/ci.yml",
				"README.md",
				".yamllint",
				"tasks/main.yml",
				"tasks/.ansible-lint",
				"meta/main.yml",
				"docs/README.md",
				"docs/usage.md",
				"docs/guide.txt",
			})

			var reported []string
			removed, err := Strip(root, Options{
				Patterns:       patterns,
				PreserveReadme: tt.preserveReadme,
				OnRemove:       func(p string) { reported = append(reported, p) },
			})
			require.NoError(t, err)
			assert.Equal(t, removed, reported)

			for _, k := range tt.kept {
				assert.True(t, exists(filepath.Join(root, k)), "expected %s to remain", k)
			}
			for _, g := range tt.gone {
				assert.False(t, exists(filepath.Join(root, g)), "expected %s to be removed", g)
			}
			assert.True(t, exists(root))

			// nothing matching remains except a preserved README.md
			_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
				require.NoError(t, err)
				if path == root {
					return nil
				}
				matched, _ := Match(patterns, d.Name())
				if matched {
					assert.True(t, tt.preserveReadme && d.Name() == "README.md", "unexpected survivor %s", path)
				}
				return nil
			})
		})
	}
}

func TestStripDirectoryNamedReadme(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, []string{"README.md/inner.txt"})

	_, err := Strip(root, Options{Patterns: patterns, PreserveReadme: true})
	require.NoError(t, err)
	assert.False(t, exists(filepath.Join(root, "README.md")))
}

func TestStripRootMatchingPatternIsKept(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".github")
	buildTree(t, root, []string{"notes.md", "keep.txt"})

	_, err := Strip(root, Options{Patterns: patterns})
	require.NoError(t, err)
	assert.True(t, exists(root))
	assert.True(t, exists(filepath.Join(root, "keep.txt")))
	assert.False(t, exists(filepath.Join(root, "notes.md")))
}

func TestStripMissingRoot(t *testing.T) {
	_, err := Strip(filepath.Join(t.TempDir(), "absent"), Options{Patterns: patterns})
	assert.Error(t, err)
}

func TestStripBadPattern(t *testing.T) {
	_, err := Strip(t.TempDir(), Options{Patterns: []string{"[unclosed"}})
	assert.ErrorIs(t, err, ErrBadPattern)
}
