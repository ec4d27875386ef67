package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/harrison/dirtally/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists every supported format.
var Formats = []string{FormatCSV, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// Writer serializes ReportData.
type Writer interface {
	Write(w io.Writer, data *models.ReportData) error
	// Extension is the file extension, without the dot, used when saving.
	Extension() string
}

// NewWriter returns the Writer for format. An empty format selects CSV.
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return CSVWriter{}, nil
	case FormatJSON:
		return JSONWriter{Pretty: true}, nil
	case FormatYAML, "yml":
		return YAMLWriter{}, nil
	case FormatMarkdown, "md":
		return MarkdownWriter{}, nil
	case FormatHTML:
		return HTMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q, must be one of: %s", format, strings.Join(Formats, ", "))
	}
}

// CSVWriter writes the three-section tabular report: type counts, the
// extension table and the file list, separated by blank rows.
type CSVWriter struct{}

// Extension implements Writer.
func (CSVWriter) Extension() string { return "csv" }

// Write implements Writer.
func (CSVWriter) Write(w io.Writer, data *models.ReportData) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(data.Counts)+1)
	values := make([]string, 0, len(data.Counts)+1)
	for _, c := range data.Counts {
		header = append(header, c.Label+" count")
		values = append(values, strconv.Itoa(c.Count))
	}
	header = append(header, "Total count")
	values = append(values, strconv.Itoa(data.Total))

	rows := [][]string{header, values, {}, {"Extension", "Count"}}
	for _, e := range data.Extensions {
		rows = append(rows, []string{e.Extension, strconv.Itoa(e.Count)})
	}
	rows = append(rows, []string{}, []string{"Path", "Filename", "Extension", "Size"})
	for _, f := range data.Files {
		rows = append(rows, []string{f.Path, f.Name, f.Extension, strconv.FormatInt(f.Size, 10)})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// JSONWriter writes ReportData as a JSON document.
type JSONWriter struct {
	Pretty bool // Enable pretty printing with indentation
}

// Extension implements Writer.
func (JSONWriter) Extension() string { return "json" }

// Write implements Writer.
func (jw JSONWriter) Write(w io.Writer, data *models.ReportData) error {
	enc := json.NewEncoder(w)
	if jw.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// YAMLWriter writes ReportData as a YAML document.
type YAMLWriter struct{}

// Extension implements Writer.
func (YAMLWriter) Extension() string { return "yaml" }

// Write implements Writer.
func (YAMLWriter) Write(w io.Writer, data *models.ReportData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}
	return nil
}

// MarkdownWriter writes the report as GitHub-flavoured Markdown tables.
type MarkdownWriter struct{}

// Extension implements Writer.
func (MarkdownWriter) Extension() string { return "md" }

// Write implements Writer.
func (MarkdownWriter) Write(w io.Writer, data *models.ReportData) error {
	_, err := io.WriteString(w, renderMarkdown(data))
	return err
}

func renderMarkdown(data *models.ReportData) string {
	var sb strings.Builder

	sb.WriteString("# Directory Report\n\n")
	sb.WriteString("## Counts\n\n")
	sb.WriteString("| Type | Count |\n")
	sb.WriteString("|------|------:|\n")
	for _, c := range data.Counts {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", c.Label, c.Count))
	}
	sb.WriteString(fmt.Sprintf("| **Total** | **%d** |\n\n", data.Total))

	sb.WriteString("## Extensions\n\n")
	sb.WriteString("| Extension | Count |\n")
	sb.WriteString("|-----------|------:|\n")
	for _, e := range data.Extensions {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", escapeCell(e.Extension), e.Count))
	}
	sb.WriteString("\n")

	sb.WriteString("## Files\n\n")
	sb.WriteString("| Path | Filename | Extension | Size |\n")
	sb.WriteString("|------|----------|-----------|-----:|\n")
	for _, f := range data.Files {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n",
			escapeCell(f.Path), escapeCell(f.Name), escapeCell(f.Extension), f.Size))
	}

	return sb.String()
}

// escapeCell keeps a value from breaking out of its table cell.
func escapeCell(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "|", "\\|", "\n", " ", "`", "\\`", "*", "\\*", "_", "\\_")
	return r.Replace(s)
}

// HTMLWriter renders the Markdown report to a standalone HTML page.
type HTMLWriter struct{}

// Extension implements Writer.
func (HTMLWriter) Extension() string { return "html" }

// Write implements Writer.
func (HTMLWriter) Write(w io.Writer, data *models.ReportData) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(renderMarkdown(data)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	page := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString("Directory Report"), body.String())
	_, err := io.WriteString(w, page)
	return err
}
