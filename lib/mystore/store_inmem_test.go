package mystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	UID    string
	Amount int64
}

func TestInMemoryStore(t *testing.T) {
	c := context.TODO()
	store, cleanup, err := NewInMemoryStore[record](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get on missing uid", func(t *testing.T) {
		_, exists, err := store.Get(c, "unknown")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Put and get", func(t *testing.T) {
		err := store.Put(c, "a", record{UID: "a", Amount: 4500})
		assert.NoError(t, err)

		got, exists, err := store.Get(c, "a")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, int64(4500), got.Amount)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Put(c, "b", record{UID: "b", Amount: 100})
		assert.NoError(t, err)

		err = store.Delete(c, "b")
		assert.NoError(t, err)

		_, exists, err := store.Get(c, "b")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Rolled-back transaction returns error", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			innerErr := store.Put(c, "c", record{UID: "c"})
			assert.NoError(t, innerErr)
			return fmt.Errorf("something failed")
		})
		assert.Error(t, err)
	})

	t.Run("Transactional read-modify-write", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			got, exists, innerErr := store.Get(c, "a")
			assert.NoError(t, innerErr)
			assert.True(t, exists)

			got.Amount += 500
			return store.Put(c, "a", got)
		})
		assert.NoError(t, err)

		got, _, _ := store.Get(c, "a")
		assert.Equal(t, int64(5000), got.Amount)
	})
}
