package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/dirtally/internal/models"
)

const separator = "======================="

// countLines is the order and wording of the count details block. Unknown
// is printed apart, after a blank line.
var countLines = []struct {
	label string
	typ   models.EntryType
}{
	{"Directory count", models.Directory},
	{"File count", models.RegularFile},
	{"Block device count", models.BlockDevice},
	{"Char device count", models.CharDevice},
	{"Junction count", models.JunctionPoint},
	{"Socket count", models.Socket},
	{"Symlink count", models.Symlink},
	{"Fifo count", models.Fifo},
}

// CountDetails writes the per-type count block followed by the total.
func CountDetails(w io.Writer, data *models.ReportData, colored bool) {
	label := newColor(colored, color.FgCyan)
	value := newColor(colored, color.Bold)
	rule := newColor(colored, color.FgHiBlack)

	var b strings.Builder
	b.WriteString(rule.Sprint(separator) + "\n")
	for _, line := range countLines {
		fmt.Fprintf(&b, "%s: %s\n", label.Sprint(line.label), value.Sprint(data.Count(line.typ)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", label.Sprint("Unknown objects count"), value.Sprint(data.Count(models.Unknown)))
	b.WriteString(rule.Sprint(separator) + "\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", label.Sprint("Total"), newColor(colored, color.FgGreen, color.Bold).Sprint(data.Total))

	fmt.Fprint(w, b.String())
}

// newColor returns a color that is forced on or off regardless of the
// process-wide NoColor detection.
func newColor(colored bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
