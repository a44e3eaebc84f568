package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

func TestKV(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "todo-storage")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, "todo-storage", []byte("one")))
	require.NoError(t, s.Set(ctx, "todo-storage", []byte("two")))
	got, err := s.Get(ctx, "todo-storage")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	require.NoError(t, s.Set(ctx, "empty", nil))
	got, err = s.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Delete(ctx, "todo-storage"))
	_, err = s.Get(ctx, "todo-storage")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "tada.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte(`{"todos":[]}`)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"todos":[]}`, string(got))
}

func TestStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tada.db")
	kv, err := Open(ctx, path)
	require.NoError(t, err)
	defer kv.Close()

	st := store.Open(ctx, kv)
	st.Add(model.Draft{Title: "Buy milk"})
	require.NoError(t, st.Close(ctx))

	again := store.Open(ctx, kv)
	defer again.Close(ctx)
	todos := again.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)
}
