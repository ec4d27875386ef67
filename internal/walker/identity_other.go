//go:build !unix && !windows

package walker

import (
	"path/filepath"

	"github.com/harrison/dirtally/internal/models"
)

// identify falls back to the fully resolved path where the platform has no
// device/inode numbers. Hard-linked directories are not detected here.
func identify(path string) (models.DirectoryIdentity, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return models.DirectoryIdentity{}, err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return models.DirectoryIdentity{}, err
	}
	return models.DirectoryIdentity{Key: abs}, nil
}
