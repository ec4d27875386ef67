package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/dirtally/internal/walker"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	w.Render(out, true)
}

// Render writes the warning, in yellow when colored is set.
func (w Warning) Render(out io.Writer, colored bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}
		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, newColor(colored, color.FgYellow).Sprint(b.String()))
}

// IssuesWarning summarizes the problems a walk stepped over. The message
// lists counts per kind; at most maxPaths affected paths are listed (all
// of them when maxPaths <= 0). ok is false when there were no issues.
func IssuesWarning(issues []*walker.Issue, maxPaths int) (w Warning, ok bool) {
	if len(issues) == 0 {
		return Warning{}, false
	}

	counts := walker.CountIssues(issues)
	var parts []string
	for _, kind := range walker.IssueKinds {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", kind, n))
		}
	}

	w = Warning{
		Title:   fmt.Sprintf("%d %s during the scan", len(issues), plural(len(issues), "issue", "issues")),
		Message: strings.Join(parts, ", "),
	}

	for _, issue := range issues {
		if maxPaths > 0 && len(w.Files) == maxPaths {
			w.Files = append(w.Files, fmt.Sprintf("... and %d more", len(issues)-maxPaths))
			break
		}
		w.Files = append(w.Files, issue.Path)
	}

	if counts[walker.DirectoryUnreadable] > 0 {
		w.Suggestion = "Re-run with sufficient permissions to include unreadable directories"
	}
	return w, true
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
