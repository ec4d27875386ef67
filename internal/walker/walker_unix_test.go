//go:build unix

package walker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/dirtally/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func kinds(issues []*Issue, kind IssueKind) []*Issue {
	var out []*Issue
	for _, i := range issues {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

func TestWalkSymlinkCycleToRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dirA", "file.txt"), 10)
	writeFile(t, filepath.Join(root, "file2"), 0)
	require.NoError(t, os.Symlink(root, filepath.Join(root, "dirA", "link")))

	res, err := New(&captureLogger{}).Walk(context.Background(), root)
	require.NoError(t, err)

	c := res.Aggregator.Counters()
	assert.Equal(t, 2, c.Directories)
	assert.Equal(t, 2, c.Files)
	assert.Equal(t, 1, c.Symlinks)
	assert.Equal(t, 5, res.Aggregator.Total())
	assert.Equal(t, map[string]int{".txt": 1, models.NoExtension: 1}, res.Aggregator.Extensions())
	assert.Equal(t, 2, res.Aggregator.Len())
	assert.Len(t, kinds(res.Issues, DirectoryCycle), 1)
	assertInvariants(t, res)

	rec, ok := res.Aggregator.Lookup(filepath.Join(res.Root, "dirA", "file.txt"))
	require.True(t, ok)
	assert.Equal(t, int64(10), rec.Size)
}

func TestWalkDirectoryReachableTwiceIsEnteredOnce(t *testing.T) {
	tests := []struct {
		name     string
		linkName string // sorts before or after the real directory "m"
	}{
		{"link listed after directory", "z-link"},
		{"link listed before directory", "a-link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "m", "x.txt"), 1)
			require.NoError(t, os.Symlink(filepath.Join(root, "m"), filepath.Join(root, tt.linkName)))

			res, err := New(nil).Walk(context.Background(), root)
			require.NoError(t, err)

			c := res.Aggregator.Counters()
			assert.Equal(t, 2, c.Directories, "root and m, once each")
			assert.Equal(t, 1, c.Symlinks)
			assert.Equal(t, 1, c.Files)
			assert.Equal(t, 1, res.Aggregator.Len(), "x.txt registered under one path only")
			assert.Len(t, kinds(res.Issues, DirectoryCycle), 1)
			assertInvariants(t, res)
		})
	}
}

func TestWalkSymlinkToFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "target.md"), 6)
	require.NoError(t, os.Symlink(filepath.Join(root, "target.md"), filepath.Join(root, "alias.md")))

	res, err := New(nil).Walk(context.Background(), root)
	require.NoError(t, err)

	c := res.Aggregator.Counters()
	assert.Equal(t, 1, c.Files)
	assert.Equal(t, 1, c.Symlinks)
	assert.Equal(t, 2, res.Aggregator.Len())
	assert.Equal(t, 2, res.Aggregator.Extensions()[".md"])

	rec, ok := res.Aggregator.Lookup(filepath.Join(res.Root, "alias.md"))
	require.True(t, ok)
	assert.Equal(t, int64(6), rec.Size, "size follows the link")
}

func TestWalkBrokenSymlinkDefaultsSizeToZero(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling.log")))

	logger := &captureLogger{}
	res, err := New(logger).Walk(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Aggregator.Counters().Symlinks)
	rec, ok := res.Aggregator.Lookup(filepath.Join(res.Root, "dangling.log"))
	require.True(t, ok)
	assert.Equal(t, int64(0), rec.Size)
	assert.Equal(t, ".log", rec.Extension)

	sizeIssues := kinds(res.Issues, SizeUnavailable)
	require.Len(t, sizeIssues, 1)
	assert.True(t, errors.Is(sizeIssues[0], ErrSizeUnavailable))
	assert.True(t, logger.warned("dangling.log"))
}

func TestWalkUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "secret.txt"), 5)
	writeFile(t, filepath.Join(root, "open.txt"), 1)
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	logger := &captureLogger{}
	res, err := New(logger).Walk(context.Background(), root)
	require.NoError(t, err)

	c := res.Aggregator.Counters()
	assert.Equal(t, 2, c.Directories, "locked directory was entered and counted")
	assert.Equal(t, 1, c.Files, "no children of the locked directory")
	assert.Equal(t, 3, res.Aggregator.Total())
	_, found := res.Aggregator.Lookup(filepath.Join(res.Root, "locked", "secret.txt"))
	assert.False(t, found)

	unreadable := kinds(res.Issues, DirectoryUnreadable)
	require.Len(t, unreadable, 1)
	assert.Equal(t, filepath.Join(res.Root, "locked"), unreadable[0].Path)
	assert.True(t, logger.warned("Permission denied"))
	assertInvariants(t, res)
}

func TestWalkSpecialFiles(t *testing.T) {
	root := t.TempDir()
	if err := unix.Mkfifo(filepath.Join(root, "pipe"), 0o600); err != nil {
		t.Skipf("mkfifo not supported: %v", err)
	}
	writeFile(t, filepath.Join(root, "plain.txt"), 2)

	res, err := New(nil).Walk(context.Background(), root)
	require.NoError(t, err)

	c := res.Aggregator.Counters()
	assert.Equal(t, 1, c.Fifos)
	assert.Equal(t, 1, c.Files)
	assert.Equal(t, 3, res.Aggregator.Total())
	assert.Equal(t, 2, res.Aggregator.Len(), "non-regular entries are registered too")
	assert.Equal(t, 1, res.Aggregator.Extensions()[models.NoExtension])
}
