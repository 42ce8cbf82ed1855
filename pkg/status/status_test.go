package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func TestTracker(t *testing.T) {
	tr := NewTracker()

	tr.Record(FileInfo{Path: "b.md", Status: StatusModified, Replacements: 3})
	tr.Record(FileInfo{Path: "a.md", Status: StatusUnchanged})
	tr.Record(FileInfo{Path: "c.md", Status: StatusSkipped})

	files := tr.Files()
	require.Len(t, files, 3)
	assert.Equal(t, "a.md", files[0].Path, "files are sorted by path")
	assert.Equal(t, "b.md", files[1].Path)

	s := tr.Summary()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Modified)
	assert.Equal(t, 1, s.Unchanged)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 3, s.Replacements)
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record(FileInfo{Path: "x.md", Status: StatusModified, Replacements: 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Summary().Total)
	assert.Equal(t, 50, tr.Summary().Replacements)
}

func TestChecksum(t *testing.T) {
	a := Checksum([]byte("hello"))
	b := Checksum([]byte("hello"))
	c := Checksum([]byte("hello!"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
