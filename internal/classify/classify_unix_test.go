//go:build unix

package classify

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/dirtally/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestClassifySymlinkToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.Equal(t, models.Symlink, Classify(info))
}

func TestClassifySymlinkToDirectory(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "loop")
	require.NoError(t, os.Symlink(dir, link))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.Equal(t, models.Symlink, Classify(info))
}

func TestClassifyFifo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe")
	if err := unix.Mkfifo(path, 0o600); err != nil {
		t.Skipf("mkfifo not supported: %v", err)
	}

	info, err := os.Lstat(path)
	require.NoError(t, err)
	assert.Equal(t, models.Fifo, Classify(info))
}

func TestClassifySocket(t *testing.T) {
	// Socket paths are length limited, keep the directory short.
	dir, err := os.MkdirTemp("", "cls")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "s.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets not supported: %v", err)
	}
	defer ln.Close()

	info, err := os.Lstat(path)
	require.NoError(t, err)
	assert.Equal(t, models.Socket, Classify(info))
}

func TestClassifyCharDevice(t *testing.T) {
	info, err := os.Lstat("/dev/null")
	if err != nil {
		t.Skipf("/dev/null unavailable: %v", err)
	}
	assert.Equal(t, models.CharDevice, Classify(info))
}
