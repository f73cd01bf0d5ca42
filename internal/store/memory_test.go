package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_SetGet(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.Equal(t, ErrMiss, err)

	require.NoError(t, kv.Set(ctx, "auth:token:abc", "admin", 0))
	v, err := kv.Get(ctx, "auth:token:abc")
	require.NoError(t, err)
	assert.Equal(t, "admin", v)
}

func TestMemoryKV_TTL(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := kv.Get(ctx, "k")
	assert.Equal(t, ErrMiss, err)
}

func TestMemoryKV_ScanKeys(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "auth:token:a", "x", 0))
	require.NoError(t, kv.Set(ctx, "auth:token:b", "y", 0))
	require.NoError(t, kv.Set(ctx, "other:c", "z", 0))

	keys, err := kv.ScanKeys(ctx, "auth:token:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"auth:token:a", "auth:token:b"}, keys)
}
