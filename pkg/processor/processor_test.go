package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/log"
	"github.com/walteh/reword/pkg/status"
)

func resolved(t *testing.T) *config.Resolved {
	t.Helper()
	cfg := &config.Config{Enabled: true, Replacement: "Renamer", MatchVariants: true}
	res, err := cfg.Resolve()
	require.NoError(t, err)
	return res
}

func testLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, zerolog.Disabled)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func byPath(infos []status.FileInfo) map[string]status.FileInfo {
	out := make(map[string]status.FileInfo, len(infos))
	for _, info := range infos {
		out[info.Path] = info
	}
	return out
}

func TestProcessor_Run(t *testing.T) {
	root := writeTree(t, map[string]string{
		"readme.md":      "opencode is here and open_code too",
		"docs/guide.md":  "see https://opencode.ai and `opencode`",
		"docs/notes.txt": "nothing relevant",
	})

	p := New(resolved(t), testLogger(), Options{Root: root})
	files, summary, err := p.Run(context.Background())
	require.NoError(t, err)

	infos := byPath(files)
	require.Len(t, infos, 3)

	assert.Equal(t, status.StatusModified, infos["readme.md"].Status)
	assert.Equal(t, 2, infos["readme.md"].Replacements)
	assert.Equal(t, status.StatusUnchanged, infos["docs/guide.md"].Status, "URL and inline code are protected")
	assert.Equal(t, status.StatusUnchanged, infos["docs/notes.txt"].Status)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Modified)
	assert.Equal(t, 2, summary.Replacements)

	data, err := os.ReadFile(filepath.Join(root, "readme.md"))
	require.NoError(t, err)
	assert.Equal(t, "Renamer is here and Renamer too", string(data))
}

func TestProcessor_DryRun(t *testing.T) {
	root := writeTree(t, map[string]string{
		"readme.md": "opencode lives",
	})

	p := New(resolved(t), testLogger(), Options{Root: root, DryRun: true})
	files, summary, err := p.Run(context.Background())
	require.NoError(t, err)

	infos := byPath(files)
	require.Equal(t, status.StatusModified, infos["readme.md"].Status)
	assert.NotEmpty(t, infos["readme.md"].Diff, "dry run must render a diff")
	assert.Equal(t, 1, summary.Modified)

	data, err := os.ReadFile(filepath.Join(root, "readme.md"))
	require.NoError(t, err)
	assert.Equal(t, "opencode lives", string(data), "dry run must not write")
}

func TestProcessor_Globs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.md":        "opencode",
		"b.txt":       "opencode",
		"skip/c.md":   "opencode",
		"keep/d.md":   "opencode",
		"keep/e.bin":  "opencode",
		"keep/f.yaml": "opencode",
	})

	p := New(resolved(t), testLogger(), Options{
		Root:    root,
		Include: []string{"**/*.md"},
		Ignore:  []string{"skip/**"},
	})
	files, summary, err := p.Run(context.Background())
	require.NoError(t, err)

	infos := byPath(files)
	require.Len(t, infos, 3, "only .md files are selected")
	assert.Equal(t, status.StatusSkipped, infos["skip/c.md"].Status)
	assert.Equal(t, status.StatusModified, infos["a.md"].Status)
	assert.Equal(t, status.StatusModified, infos["keep/d.md"].Status)
	assert.Equal(t, 1, summary.Skipped)
}

func TestProcessor_BinarySkipped(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.md"), []byte("open\x00code"), 0o644))

	p := New(resolved(t), testLogger(), Options{Root: root})
	files, _, err := p.Run(context.Background())
	require.NoError(t, err)

	infos := byPath(files)
	assert.Equal(t, status.StatusSkipped, infos["blob.md"].Status)
}

func TestProcessor_ConcurrentJobs(t *testing.T) {
	tree := make(map[string]string)
	for i := 0; i < 40; i++ {
		tree[fmt.Sprintf("d/f%02d.md", i)] = "opencode here"
	}
	root := writeTree(t, tree)

	p := New(resolved(t), testLogger(), Options{Root: root, Jobs: 8})
	files, summary, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 40)
	assert.Equal(t, 40, summary.Total)
	assert.Equal(t, 40, summary.Modified)
}
