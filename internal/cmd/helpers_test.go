package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points every state and config location at temp directories
func isolate(t *testing.T) string {
	t.Helper()
	state := t.TempDir()
	t.Setenv("RCLEAN_HOME", state)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return state
}

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin == nil {
		stdin = bytes.NewReader(nil)
	}
	cmd.SetIn(stdin)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFiles creates files under root; keys ending in "/" are directories
func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}
