package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	require.NoError(t, s.Record(ctx, Entry{Session: "a", Source: "(+ 1 2)", Result: "3"}))
	require.NoError(t, s.Record(ctx, Entry{Session: "b", Source: "x", Error: "undefined symbol: x"}))
	require.NoError(t, s.Record(ctx, Entry{Session: "a", Source: "(define y 1)"}))

	entries, err := s.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "(define y 1)", entries[0].Source)
	assert.Equal(t, "x", entries[1].Source)
	assert.Equal(t, "undefined symbol: x", entries[1].Error)
	assert.Equal(t, "3", entries[2].Result)
	assert.True(t, entries[0].ID > entries[1].ID)
	assert.True(t, entries[2].CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC)),
		"created at %v", entries[2].CreatedAt)

	entries, err = s.List(ctx, Query{Session: "a"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "a", e.Session)
	}

	entries, err = s.List(ctx, Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "(define y 1)", entries[0].Source)

	entries, err = s.List(ctx, Query{Session: "missing"})
	require.NoError(t, err)
	assert.Empty(t, entries)

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sessions)
}

func TestStore_reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, Entry{Session: "s", Source: "1", Result: "1"}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s", entries[0].Session)
}

func TestNewSession(t *testing.T) {
	a := NewSession()
	assert.NotEmpty(t, a)
	_, err := time.Parse("20060102T150405.000000000", a)
	assert.NoError(t, err)
}
