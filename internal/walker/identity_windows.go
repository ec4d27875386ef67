//go:build windows

package walker

import (
	"github.com/harrison/dirtally/internal/models"
	"golang.org/x/sys/windows"
)

// identify returns the volume serial number and file index of the
// directory at path. Junctions and symlinks are followed.
func identify(path string) (models.DirectoryIdentity, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return models.DirectoryIdentity{}, err
	}

	// FILE_FLAG_BACKUP_SEMANTICS is required to open a directory handle.
	h, err := windows.CreateFile(name, 0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil, windows.OPEN_EXISTING, windows.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return models.DirectoryIdentity{}, err
	}
	defer windows.CloseHandle(h)

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &info); err != nil {
		return models.DirectoryIdentity{}, err
	}
	return models.DirectoryIdentity{
		Device: uint64(info.VolumeSerialNumber),
		Inode:  uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow),
	}, nil
}
