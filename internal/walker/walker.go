// Package walker performs the cycle-safe depth-first walk of a directory
// tree, classifying every entry and feeding the results to an Aggregator.
//
// The walk keeps an explicit stack of open directories instead of
// recursing, so tree depth is bounded by heap rather than goroutine stack.
// Every physical directory is entered at most once: directories are keyed
// by device and inode (or the platform equivalent) before being listed, so
// symlink loops and hard-linked directories are skipped.
//
// Only an invalid root aborts a walk. Everything else (unreadable
// directories, revisited directories, unreadable sizes, duplicate paths) is
// logged, recorded as an Issue and stepped over.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/dirtally/internal/aggregate"
	"github.com/harrison/dirtally/internal/classify"
	"github.com/harrison/dirtally/internal/models"
)

// Logger is the sink for the walk's trace. Visited paths are logged at
// info level, every recovered problem at warn level.
type Logger interface {
	LogInfo(message string)
	LogWarn(message string)
}

// Walker walks directory trees. A Walker holds no per-walk state and may be
// reused for several sequential walks.
type Walker struct {
	logger Logger
}

// New creates a Walker that reports to logger. A nil logger discards output.
func New(logger Logger) *Walker {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Walker{logger: logger}
}

// Result is the outcome of one walk.
type Result struct {
	Root       string                // Absolute root path
	Aggregator *aggregate.Aggregator // Counters, file index and extension tally
	Issues     []*Issue              // Recovered problems in the order met
	StartedAt  time.Time
	FinishedAt time.Time
}

// frame is one open directory on the work stack.
type frame struct {
	dir     string
	entries []fs.DirEntry
	next    int
}

// run carries the mutable state of a single walk.
type run struct {
	logger  Logger
	agg     *aggregate.Aggregator
	visited map[models.DirectoryIdentity]struct{}
	issues  []*Issue
}

// Walk traverses the tree rooted at root. It returns an error wrapping
// ErrInvalidRoot if root is missing or not a directory, and ctx.Err() if
// ctx is cancelled mid-walk.
func (w *Walker) Walk(ctx context.Context, root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}

	r := &run{
		logger:  w.logger,
		agg:     aggregate.New(w.logger),
		visited: make(map[models.DirectoryIdentity]struct{}),
	}
	result := &Result{Root: abs, Aggregator: r.agg, StartedAt: time.Now()}

	var stack []*frame
	if f := r.enter(abs); f != nil {
		stack = append(stack, f)
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("walk of %s interrupted: %w", abs, err)
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		if child := r.visit(top.dir, entry); child != nil {
			stack = append(stack, child)
		}
	}

	result.Issues = r.issues
	result.FinishedAt = time.Now()
	return result, nil
}

// enter resolves the identity of dir, counts it and lists its children.
// It returns nil when dir must not be descended into.
func (r *run) enter(dir string) *frame {
	id, err := identify(dir)
	if err != nil {
		r.logger.LogWarn(fmt.Sprintf("Could not stat %s: %v", dir, err))
		r.record(DirectoryUnreadable, dir, err)
		return nil
	}
	if _, seen := r.visited[id]; seen {
		r.logger.LogInfo(fmt.Sprintf("Directory already visited, skipping: %s", dir))
		r.record(DirectoryCycle, dir, nil)
		return nil
	}
	r.visited[id] = struct{}{}
	r.agg.IncrementType(models.Directory)

	// os.ReadDir returns whatever it read before failing; keep it.
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			r.logger.LogWarn(fmt.Sprintf("Permission denied: %s", dir))
		} else {
			r.logger.LogWarn(fmt.Sprintf("Could not list %s: %v", dir, err))
		}
		r.record(DirectoryUnreadable, dir, err)
	}
	return &frame{dir: dir, entries: entries}
}

// visit processes one child of dir and returns a frame when the child
// leads to a directory that should be walked next.
func (r *run) visit(dir string, entry fs.DirEntry) *frame {
	path := filepath.Join(dir, entry.Name())
	r.logger.LogInfo(fmt.Sprintf("Path to analyze: %s", path))

	var typ models.EntryType
	info, err := entry.Info()
	if err != nil {
		// The entry vanished or cannot be stat'ed; fall back to the type
		// bits the directory listing carried.
		typ = classify.FromMode(entry.Type(), false)
	} else {
		typ = classify.Classify(info)
	}

	if typ == models.Directory {
		return r.enter(path)
	}

	r.agg.IncrementType(typ)

	if classify.IsLink(typ) && targetIsDir(path) {
		return r.enter(path)
	}

	r.register(entry.Name(), path)
	return nil
}

// register builds the FileRecord for a non-directory entry and hands it to
// the aggregator.
func (r *run) register(name, path string) {
	record := models.FileRecord{
		Name:      name,
		Path:      path,
		Extension: ExtensionOf(name),
		Size:      r.sizeOf(path),
	}
	if !r.agg.RegisterFile(record) {
		r.record(DuplicatePath, path, nil)
	}
}

// sizeOf returns the size of the file at path, following symlinks.
// Failures are logged and reported as size 0.
func (r *run) sizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		r.logger.LogWarn(fmt.Sprintf("Couldn't read the size of %s, setting to 0: %v", path, err))
		r.record(SizeUnavailable, path, err)
		return 0
	}
	if info.Size() < 0 {
		return 0
	}
	return info.Size()
}

func (r *run) record(kind IssueKind, path string, err error) {
	r.issues = append(r.issues, &Issue{Kind: kind, Path: path, Err: err})
}

// targetIsDir reports whether path resolves to a directory.
func targetIsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

type discardLogger struct{}

func (discardLogger) LogInfo(string) {}
func (discardLogger) LogWarn(string) {}
