package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherPicksUpWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.glsl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	var got string
	assert.Eventually(t, func() bool {
		if src, changed := w.Poll(); changed {
			got = src
		}
		return got == "v2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherSurvivesRenameSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.glsl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// Editors that save atomically write a sibling and rename it over the
	// target, replacing the inode.
	tmp := filepath.Join(dir, "draft.glsl.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	var got string
	assert.Eventually(t, func() bool {
		if src, changed := w.Poll(); changed {
			got = src
		}
		return got == "v2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.glsl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)

	_, changed := w.Poll()
	assert.False(t, changed)
}

func TestWatcherPollIsNonBlocking(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.glsl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	done := make(chan struct{})
	go func() {
		w.Poll()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll blocked with no pending events")
	}
}
