// Package report projects a finished walk into ReportData and writes it
// out in one of several formats.
package report

import (
	"sort"

	"github.com/harrison/dirtally/internal/aggregate"
	"github.com/harrison/dirtally/internal/models"
)

// Summarize builds the report projection from final walk state. It does
// not retain or modify its arguments.
func Summarize(counters models.Counters, files []models.FileRecord, tally map[string]int) *models.ReportData {
	data := &models.ReportData{
		Counts:     make([]models.TypeCount, 0, len(models.ReportOrder)),
		Total:      counters.Total(),
		Extensions: make([]models.ExtensionCount, 0, len(tally)),
		Files:      make([]models.FileRecord, len(files)),
	}

	for _, t := range models.ReportOrder {
		data.Counts = append(data.Counts, models.TypeCount{Type: t, Label: t.Label(), Count: counters.Get(t)})
	}

	for ext, n := range tally {
		data.Extensions = append(data.Extensions, models.ExtensionCount{Extension: ext, Count: n})
	}
	sort.Slice(data.Extensions, func(i, j int) bool {
		return data.Extensions[i].Extension < data.Extensions[j].Extension
	})

	copy(data.Files, files)
	return data
}

// FromAggregator summarizes the current state of agg.
func FromAggregator(agg *aggregate.Aggregator) *models.ReportData {
	return Summarize(agg.Counters(), agg.Files(), agg.Extensions())
}
