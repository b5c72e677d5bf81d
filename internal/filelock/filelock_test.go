package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	assert.Equal(t, lockPath, lock.Path())
	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
}

func TestTryLockHeld(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	first := NewFileLock(lockPath)
	require.NoError(t, first.Lock())
	defer first.Unlock()

	second := NewFileLock(lockPath)
	acquired, err := second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired, "lock should be held by the first handle")
}

func TestAcquireRunLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "locks", "root.lock")

	lock, err := AcquireRunLock(lockPath)
	require.NoError(t, err)

	_, err = AcquireRunLock(lockPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))

	require.NoError(t, lock.Unlock())

	again, err := AcquireRunLock(lockPath)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}

func TestConcurrentLockAndIncrement(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "counter.lock")
	counterPath := filepath.Join(dir, "counter.txt")
	require.NoError(t, os.WriteFile(counterPath, []byte("0"), 0644))

	const workers = 5
	const iterations = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lock := NewFileLock(lockPath)
				if err := lock.Lock(); err != nil {
					t.Errorf("lock: %v", err)
					return
				}
				data, _ := os.ReadFile(counterPath)
				n, _ := strconv.Atoi(string(data))
				_ = os.WriteFile(counterPath, []byte(strconv.Itoa(n+1)), 0644)
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(counterPath)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(workers*iterations), string(data))
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, AtomicWrite(target, []byte("first")))
	require.NoError(t, AtomicWrite(target, []byte("second")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestAtomicWriteFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0644))

	// A directory in the way of the rename target makes the write fail
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0755))
	assert.Error(t, AtomicWrite(blocked, []byte("x")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestLockAndWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sub", "file.yaml")

	require.NoError(t, LockAndWrite(target, []byte("data")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}
