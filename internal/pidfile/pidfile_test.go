package pidfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akramparvez/bureaucrat/internal/pidfile"
)

func TestRecordAndRead(t *testing.T) {
	store := pidfile.NewStore(filepath.Join(t.TempDir(), "pids"))

	require.NoError(t, store.Record("web", 1234))
	require.NoError(t, store.Record("worker.1", 5678))

	pid, err := store.Read("web")
	require.NoError(t, err)
	assert.Equal(t, 1234, pid)

	pid, err = store.Read("worker.1")
	require.NoError(t, err)
	assert.Equal(t, 5678, pid)
}

func TestRemoveToleratesMissingFiles(t *testing.T) {
	store := pidfile.NewStore(t.TempDir())
	assert.NoError(t, store.Remove("never-recorded"))
}

func TestClearRemovesEveryPIDFile(t *testing.T) {
	dir := t.TempDir()
	store := pidfile.NewStore(dir)

	require.NoError(t, store.Record("web", 1))
	require.NoError(t, store.Record("worker", 2))

	// Unrelated files survive.
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("keep"), 0o644))

	require.NoError(t, store.Clear())

	_, err := store.Read("web")
	assert.Error(t, err)
	_, err = os.Stat(other)
	assert.NoError(t, err)
}
