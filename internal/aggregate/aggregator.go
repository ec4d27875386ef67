// Package aggregate holds the counters, extension tally and file index
// collected during a walk.
//
// RegisterFile is the only way to add to the file index or the extension
// tally, so the sum of the tally always equals the number of indexed files.
package aggregate

import (
	"fmt"
	"sync"

	"github.com/harrison/dirtally/internal/models"
)

// Logger receives warnings about rejected registrations.
type Logger interface {
	LogWarn(message string)
}

// Aggregator accumulates walk results. It is safe for concurrent use; every
// mutation goes through a single mutex.
type Aggregator struct {
	mu         sync.Mutex
	counters   models.Counters
	extensions map[string]int
	index      map[string]int // canonical path -> position in files
	files      []models.FileRecord
	logger     Logger
}

// New creates an empty Aggregator. A nil logger discards warnings.
func New(logger Logger) *Aggregator {
	return &Aggregator{
		extensions: make(map[string]int),
		index:      make(map[string]int),
		logger:     logger,
	}
}

// IncrementType adds one to the counter matching t.
func (a *Aggregator) IncrementType(t models.EntryType) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters.Increment(t)
}

// RegisterFile adds record to the file index and tallies its extension.
// It returns false, leaving all state untouched, when a record with the
// same path is already registered.
func (a *Aggregator) RegisterFile(record models.FileRecord) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.index[record.Path]; exists {
		if a.logger != nil {
			a.logger.LogWarn(fmt.Sprintf("There cannot be two identical paths, skipping: %s", record.Path))
		}
		return false
	}

	a.index[record.Path] = len(a.files)
	a.files = append(a.files, record)
	a.extensions[record.Extension]++
	return true
}

// Total returns the sum of all nine counters.
func (a *Aggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters.Total()
}

// Counters returns a snapshot of the type counters.
func (a *Aggregator) Counters() models.Counters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters
}

// Files returns the registered records in registration order.
func (a *Aggregator) Files() []models.FileRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	files := make([]models.FileRecord, len(a.files))
	copy(files, a.files)
	return files
}

// Extensions returns a copy of the extension tally.
func (a *Aggregator) Extensions() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()

	tally := make(map[string]int, len(a.extensions))
	for ext, n := range a.extensions {
		tally[ext] = n
	}
	return tally
}

// Lookup returns the record registered under path.
func (a *Aggregator) Lookup(path string) (models.FileRecord, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.index[path]
	if !ok {
		return models.FileRecord{}, false
	}
	return a.files[i], true
}

// Len returns the number of registered files.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.files)
}
