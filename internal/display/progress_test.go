package display

import (
	"bytes"
	"testing"
	"time"
)

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer

	ScanStarted(&buf, "/data")
	ScanFinished(&buf, 1234567*time.Microsecond)
	ReportSaved(&buf, "/r/report-1.csv", false)
	RunRecorded(&buf, "abc")

	want := "Scanning /data...\n" +
		"Scan finished in 1.235s\n" +
		"✓ Report saved to /r/report-1.csv\n" +
		"Run recorded as abc\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}
