package cmd

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptForDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name       string
		input      string
		want       string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:  "first answer valid",
			input: dir + "\n",
			want:  dir,
		},
		{
			name:       "missing path then valid",
			input:      filepath.Join(dir, "nope") + "\n" + dir + "\n",
			want:       dir,
			wantOutput: []string{"Invalid path. Try again."},
		},
		{
			name:       "file then valid",
			input:      file + "\n" + dir + "\n",
			want:       dir,
			wantOutput: []string{"Path should point to a directory."},
		},
		{
			name:       "blank lines are re-prompted",
			input:      "\n   \n" + dir + "\n",
			want:       dir,
			wantOutput: []string{"Path should point to a directory."},
		},
		{
			name:  "last line without newline",
			input: "  " + dir,
			want:  dir,
		},
		{
			name:    "eof without answer",
			input:   "",
			wantErr: true,
		},
		{
			name:       "eof after invalid answer",
			input:      filepath.Join(dir, "nope"),
			wantErr:    true,
			wantOutput: []string{"Invalid path. Try again."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := PromptForDirectory(bufio.NewReader(strings.NewReader(tt.input)), &out)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Contains(t, out.String(), "Enter a path to directory: ")
			for _, s := range tt.wantOutput {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestNewPathReaderKeepsLineReaders(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("x\n"))
	assert.Same(t, br, newPathReader(br))

	pr := newPathReader(strings.NewReader("y\n"))
	line, err := pr.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "y\n", line)
}
