package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Save(ctx, "k", []byte("one")))
	require.NoError(t, s.Save(ctx, "k", []byte("two")))
	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)

	in := payload{Name: "cart", Items: []string{"a", "b"}}
	require.NoError(t, SaveJSON(ctx, s, KeyCart, in))
	var out payload
	require.NoError(t, LoadJSON(ctx, s, KeyCart, &out))
	assert.Equal(t, in, out)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, m.Save(ctx, "k", data))
	data[0] = 'z'

	got, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestEnvelope(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, SaveJSON(ctx, m, "k", []int{1, 2}))
	raw, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"data":[1,2]}`, string(raw))

	require.NoError(t, m.Save(ctx, "old", []byte(`{"version":2,"data":[1]}`)))
	var v []int
	assert.ErrorIs(t, LoadJSON(ctx, m, "old", &v), ErrUnsupportedVersion)

	require.NoError(t, m.Save(ctx, "bare", []byte(`[1,2]`)))
	assert.Error(t, LoadJSON(ctx, m, "bare", &v))

	assert.ErrorIs(t, LoadJSON(ctx, m, "none", &v), ErrKeyNotFound)
}
