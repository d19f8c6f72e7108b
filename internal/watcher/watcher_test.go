package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestWatcher_DetectsFileChangeAndInvokesOnChange(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "petstore.yaml", "openapi: 3.0.0\n")

	changed := make(chan struct{}, 4)
	w := New(dir, 20*time.Millisecond, func() { changed <- struct{}{} }, nil)
	require.NoError(t, w.Start())
	defer w.Stop()

	select {
	case <-changed:
		t.Fatal("OnChange fired before any change occurred")
	case <-time.After(60 * time.Millisecond):
	}

	writeSpec(t, dir, "petstore.yaml", "openapi: 3.0.1\n")

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("OnChange did not fire after spec content changed")
	}
}

func TestWatcher_NewAppliesDefaultIntervalWhenNonPositive(t *testing.T) {
	w := New(t.TempDir(), 0, func() {}, nil)
	assert.Equal(t, DefaultInterval, w.Interval)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "petstore.yaml", "openapi: 3.0.0\n")

	w := New(dir, 20*time.Millisecond, func() {}, nil)
	require.NoError(t, w.Start())
	w.Stop()
	assert.NotPanics(t, func() { w.Stop() })
}
