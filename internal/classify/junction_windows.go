//go:build windows

package classify

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/windows"
)

// IsJunction reports whether info describes a reparse point that is not a
// symlink, which is how directory junctions and mount points surface.
func IsJunction(info fs.FileInfo) bool {
	if info.Mode()&fs.ModeSymlink != 0 {
		return false
	}
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || attrs == nil {
		return false
	}
	return attrs.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}
