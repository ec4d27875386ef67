// Package display renders the human-facing output of a scan: the count
// details block, issue warnings and short status lines.
//
// Every function takes an io.Writer and a colored flag so callers decide
// about terminals; nothing here inspects os.Stdout.
//
//	display.ScanStarted(os.Stdout, root)
//	display.CountDetails(os.Stdout, data, colored)
//	if w, ok := display.IssuesWarning(res.Issues, 5); ok {
//	    w.Render(os.Stderr, colored)
//	}
package display
