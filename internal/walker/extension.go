package walker

import (
	"strings"

	"github.com/harrison/dirtally/internal/models"
)

// ExtensionOf returns the suffix of name starting at its last dot. A dot in
// the first or last position does not start a suffix, so ".bashrc" and
// "notes." have none. Names without a suffix get models.NoExtension.
func ExtensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return models.NoExtension
	}
	return name[i:]
}
