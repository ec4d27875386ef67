//go:build !windows

package classify

import "io/fs"

// IsJunction always reports false: junctions only exist on Windows.
func IsJunction(fs.FileInfo) bool {
	return false
}
