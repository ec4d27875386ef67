package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PathReader defines interface for reading user input (for testing)
type PathReader interface {
	ReadString(delim byte) (string, error)
}

// newPathReader wraps r unless it already reads lines.
func newPathReader(r io.Reader) PathReader {
	if pr, ok := r.(PathReader); ok {
		return pr
	}
	return bufio.NewReader(r)
}

// PromptForDirectory asks for a directory path until an existing directory
// is entered. End of input without an answer aborts with an error.
func PromptForDirectory(reader PathReader, out io.Writer) (string, error) {
	for {
		fmt.Fprint(out, "Enter a path to directory: ")

		line, err := reader.ReadString('\n')
		path := strings.TrimSpace(line)
		if err != nil && !(errors.Is(err, io.EOF) && path != "") {
			fmt.Fprintln(out)
			return "", fmt.Errorf("no directory entered: %w", err)
		}

		if path == "" {
			fmt.Fprintln(out, "Path should point to a directory.")
			continue
		}

		info, statErr := os.Stat(path)
		switch {
		case statErr != nil:
			fmt.Fprintln(out, "Invalid path. Try again.")
		case !info.IsDir():
			fmt.Fprintln(out, "Path should point to a directory.")
		default:
			return path, nil
		}

		if err != nil {
			// Last line of input was not usable.
			return "", fmt.Errorf("no directory entered: %w", err)
		}
	}
}
