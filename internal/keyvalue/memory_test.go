package keyvalue

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "userGoal", "cardio"))
	value, err := store.Get(ctx, "userGoal")
	require.NoError(t, err)
	assert.Equal(t, "cardio", value)

	// overwrite
	require.NoError(t, store.Set(ctx, "userGoal", "strength"))
	value, err = store.Get(ctx, "userGoal")
	require.NoError(t, err)
	assert.Equal(t, "strength", value)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			assert.NoError(t, store.Set(ctx, key, "value"))
			_, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	value, err := store.Get(ctx, "key-13")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}
