package walker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRoot is returned when the walk root does not exist or is not a
// directory. It is the only error that aborts a walk.
var ErrInvalidRoot = errors.New("invalid root")

// Sentinels for the recoverable issue kinds, usable with errors.Is.
var (
	ErrDirectoryUnreadable = errors.New("directory unreadable")
	ErrDirectoryCycle      = errors.New("directory already visited")
	ErrSizeUnavailable     = errors.New("size unavailable")
	ErrDuplicatePath       = errors.New("duplicate path")
)

// IssueKind classifies a recoverable problem met during a walk.
type IssueKind int

const (
	// DirectoryUnreadable means a directory could not be identified or listed.
	DirectoryUnreadable IssueKind = iota
	// DirectoryCycle means a directory identity was reached a second time.
	DirectoryCycle
	// SizeUnavailable means an entry's size could not be read and 0 was used.
	SizeUnavailable
	// DuplicatePath means a second entry resolved to an already registered path.
	DuplicatePath
)

// IssueKinds lists every kind in display order.
var IssueKinds = []IssueKind{DirectoryUnreadable, DirectoryCycle, SizeUnavailable, DuplicatePath}

// String returns the string representation of IssueKind.
func (k IssueKind) String() string {
	switch k {
	case DirectoryUnreadable:
		return "directory_unreadable"
	case DirectoryCycle:
		return "directory_cycle"
	case SizeUnavailable:
		return "size_unavailable"
	case DuplicatePath:
		return "duplicate_path"
	default:
		return "unknown"
	}
}

func (k IssueKind) sentinel() error {
	switch k {
	case DirectoryUnreadable:
		return ErrDirectoryUnreadable
	case DirectoryCycle:
		return ErrDirectoryCycle
	case SizeUnavailable:
		return ErrSizeUnavailable
	case DuplicatePath:
		return ErrDuplicatePath
	default:
		return nil
	}
}

// Issue is a recoverable problem tied to one path. The walk continues
// after recording it.
type Issue struct {
	Kind IssueKind // What went wrong
	Path string    // Path the issue concerns
	Err  error     // Underlying error (optional)
}

// Error implements the error interface for Issue.
func (i *Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", i.Kind.sentinel(), i.Path))
	if i.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", i.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (i *Issue) Unwrap() error {
	return i.Err
}

// Is matches the sentinel of the issue's kind.
func (i *Issue) Is(target error) bool {
	return target == i.Kind.sentinel()
}

// CountIssues groups issues by kind.
func CountIssues(issues []*Issue) map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, issue := range issues {
		counts[issue.Kind]++
	}
	return counts
}
