package display

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ScanStarted announces the root being walked.
func ScanStarted(w io.Writer, root string) {
	fmt.Fprintf(w, "Scanning %s...\n", root)
}

// ScanFinished reports the elapsed walk time.
func ScanFinished(w io.Writer, elapsed time.Duration) {
	fmt.Fprintf(w, "Scan finished in %s\n", elapsed.Round(time.Millisecond))
}

// ReportSaved tells where the report was written.
func ReportSaved(w io.Writer, path string, colored bool) {
	fmt.Fprintf(w, "%s Report saved to %s\n", newColor(colored, color.FgGreen).Sprint("✓"), path)
}

// RunRecorded prints the history id of the scan.
func RunRecorded(w io.Writer, id string) {
	fmt.Fprintf(w, "Run recorded as %s\n", id)
}
