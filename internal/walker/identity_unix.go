//go:build unix

package walker

import (
	"github.com/harrison/dirtally/internal/models"
	"golang.org/x/sys/unix"
)

// identify returns the device and inode of the directory at path,
// following symlinks so an alias resolves to its target.
func identify(path string) (models.DirectoryIdentity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return models.DirectoryIdentity{}, err
	}
	return models.DirectoryIdentity{
		Device: uint64(st.Dev),
		Inode:  uint64(st.Ino),
	}, nil
}
