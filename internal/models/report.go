package models

// TypeCount is one column of the counts section of a report.
type TypeCount struct {
	Type  EntryType `json:"-" yaml:"-"`
	Label string    `json:"label" yaml:"label"`
	Count int       `json:"count" yaml:"count"`
}

// ExtensionCount is one row of the extension table.
type ExtensionCount struct {
	Extension string `json:"extension" yaml:"extension"`
	Count     int    `json:"count" yaml:"count"`
}

// ReportData is the read-only projection of a finished walk that report
// writers consume.
type ReportData struct {
	Counts     []TypeCount      `json:"counts" yaml:"counts"`
	Total      int              `json:"total" yaml:"total"`
	Extensions []ExtensionCount `json:"extensions" yaml:"extensions"`
	Files      []FileRecord     `json:"files" yaml:"files"`
}

// Count returns the count reported for t, or 0 if t is absent.
func (r *ReportData) Count(t EntryType) int {
	for _, c := range r.Counts {
		if c.Type == t {
			return c.Count
		}
	}
	return 0
}
