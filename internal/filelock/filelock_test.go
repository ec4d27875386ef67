package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirLockPath(t *testing.T) {
	dir := t.TempDir()
	lock := NewDirLock(dir)
	assert.Equal(t, filepath.Join(dir, LockName), lock.Path())
}

func TestDirLockSerializesWriters(t *testing.T) {
	dir := t.TempDir()
	counterPath := filepath.Join(dir, "counter")
	require.NoError(t, os.WriteFile(counterPath, []byte("0"), 0644))

	const goroutines = 10
	const iterations = 5

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lock := NewDirLock(dir)
				if err := lock.Lock(); err != nil {
					t.Errorf("lock: %v", err)
					return
				}

				data, err := os.ReadFile(counterPath)
				if err != nil {
					t.Errorf("read counter: %v", err)
					lock.Unlock()
					return
				}
				var counter int
				fmt.Sscanf(string(data), "%d", &counter)
				time.Sleep(time.Millisecond)
				counter++
				if err := os.WriteFile(counterPath, []byte(fmt.Sprintf("%d", counter)), 0644); err != nil {
					t.Errorf("write counter: %v", err)
				}

				if err := lock.Unlock(); err != nil {
					t.Errorf("unlock: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(counterPath)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d", goroutines*iterations), string(data))
}

func TestTryLock(t *testing.T) {
	dir := t.TempDir()
	first := NewDirLock(dir)
	second := NewDirLock(dir)

	acquired, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)

	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired, "lock is already held")

	require.NoError(t, first.Unlock())

	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired)
	second.Unlock()
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report-1.csv")

	require.NoError(t, AtomicWrite(target, []byte("Directories count\n1\n")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "Directories count\n1\n", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp file should be left behind")
	assert.Equal(t, "report-1.csv", entries[0].Name())
}

func TestAtomicWriteOverwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	require.NoError(t, AtomicWrite(target, []byte("new")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestAtomicWriteCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "report.yaml")

	require.NoError(t, AtomicWrite(target, []byte("total: 0\n")))
	assert.FileExists(t, target)
}

func TestLockAndWriteConcurrent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	target := filepath.Join(dir, "report.csv")

	const goroutines = 10
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			if err := LockAndWrite(target, []byte(string(rune('A'+id)))); err != nil {
				t.Errorf("writer %d: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Len(t, data, 1)
	assert.FileExists(t, filepath.Join(dir, LockName))
}
