package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"barkeep/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "barkeep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

const dropCSV = "kind,label,rank,quantity,unit,notes,parent\narea,Back Bar,1,,,,\n"

func TestWatcher_InitialScanImportsExistingFiles(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.csv"), []byte(dropCSV), 0644))

	w, err := New(st, dir)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	select {
	case ev := <-w.Events():
		require.NoError(t, ev.Err)
		assert.Equal(t, 1, ev.Rows)
	case <-time.After(2 * time.Second):
		t.Fatal("no import event for pre-existing file")
	}

	areas, err := st.List(store.KindArea)
	require.NoError(t, err)
	assert.Len(t, areas, 1)
}

func TestWatcher_ImportsDroppedFile(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()

	w, err := New(st, dir)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "drop.csv"), []byte(dropCSV), 0644))

	select {
	case ev := <-w.Events():
		require.NoError(t, ev.Err)
		assert.Equal(t, 1, ev.Rows)
		assert.Equal(t, filepath.Join(dir, "drop.csv"), ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("dropped file was never imported")
	}
}

func TestWatcher_IgnoresNonCSV(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()

	w, err := New(st, dir)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for non-CSV file: %+v", ev)
	case <-time.After(1 * time.Second):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	w, err := New(st, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

func TestWatcher_StartTwiceIsNoop(t *testing.T) {
	st := newTestStore(t)
	w, err := New(st, t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx))
	w.Stop()
}
