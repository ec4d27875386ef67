// Package classify maps filesystem entries to exactly one structural type.
//
// Directories are recognised first. Every other entry is matched against a
// fixed precedence list and the first match wins:
//
//	Symlink, BlockDevice, CharDevice, Fifo, JunctionPoint, Socket, RegularFile, Unknown
//
// An entry can satisfy several predicates at once (a symlink is also whatever
// it points at), so the order is part of the contract and must not change.
package classify

import (
	"io/fs"

	"github.com/harrison/dirtally/internal/models"
)

// Classify returns the type of the entry described by info. info is expected
// to come from Lstat so that symlinks are reported as themselves.
func Classify(info fs.FileInfo) models.EntryType {
	return FromMode(info.Mode(), IsJunction(info))
}

// FromMode classifies an entry from its mode bits. junction reports whether
// the platform marked the entry as a directory junction or mount point.
func FromMode(mode fs.FileMode, junction bool) models.EntryType {
	if mode.IsDir() {
		return models.Directory
	}

	switch {
	case mode&fs.ModeSymlink != 0:
		return models.Symlink
	case mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice == 0:
		return models.BlockDevice
	case mode&fs.ModeCharDevice != 0:
		return models.CharDevice
	case mode&fs.ModeNamedPipe != 0:
		return models.Fifo
	case junction:
		return models.JunctionPoint
	case mode&fs.ModeSocket != 0:
		return models.Socket
	case mode.IsRegular():
		return models.RegularFile
	default:
		return models.Unknown
	}
}

// IsLink reports whether t is an alias type that may point at a directory.
func IsLink(t models.EntryType) bool {
	return t == models.Symlink || t == models.JunctionPoint
}
