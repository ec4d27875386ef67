package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/harrison/dirtally/internal/models"
	"github.com/harrison/dirtally/internal/report"
)

func sampleData() *models.ReportData {
	counters := models.Counters{Directories: 2, Files: 2, Symlinks: 1, Unknown: 3}
	return report.Summarize(counters, nil, nil)
}

func TestCountDetailsPlain(t *testing.T) {
	var buf bytes.Buffer
	CountDetails(&buf, sampleData(), false)

	want := `=======================
Directory count: 2
File count: 2
Block device count: 0
Char device count: 0
Junction count: 0
Socket count: 0
Symlink count: 1
Fifo count: 0

Unknown objects count: 3
=======================

Total: 8
`
	if buf.String() != want {
		t.Errorf("unexpected count details:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCountDetailsColored(t *testing.T) {
	var buf bytes.Buffer
	CountDetails(&buf, sampleData(), true)

	output := buf.String()
	if !strings.Contains(output, "\x1b[") {
		t.Error("expected ANSI codes in colored output")
	}
	if !strings.Contains(output, "Directory count") || !strings.Contains(output, "Total") {
		t.Errorf("labels missing from colored output: %q", output)
	}
}

func TestCountDetailsEmpty(t *testing.T) {
	var buf bytes.Buffer
	CountDetails(&buf, &models.ReportData{}, false)

	if !strings.Contains(buf.String(), "Directory count: 0\n") || !strings.Contains(buf.String(), "Total: 0\n") {
		t.Errorf("unexpected output for empty data: %q", buf.String())
	}
}
