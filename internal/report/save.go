package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/dirtally/internal/filelock"
	"github.com/harrison/dirtally/internal/models"
)

// Save writes data in format to dir/report-<unix seconds>.<ext> and returns
// the path written. The write is atomic and holds an advisory lock so two
// runs finishing in the same second cannot interleave.
func Save(dir, format string, data *models.ReportData, now time.Time) (string, error) {
	w, err := NewWriter(format)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, data); err != nil {
		return "", fmt.Errorf("render %s report: %w", format, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("report-%d.%s", now.Unix(), w.Extension()))
	if err := filelock.LockAndWrite(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}
