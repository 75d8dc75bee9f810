package mystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Snack struct {
	UID   string
	Name  string
	Price int
}

var (
	snack = Snack{UID: "123", Name: "Paneer Tikka", Price: 250}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	ps, cleanup, err := newInMemoryStore[Snack](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := ps.Get(c, snack.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Get put", func(t *testing.T) {
		err = ps.Put(c, snack.UID, snack)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		s, found, err := ps.Get(c, snack.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, Snack{UID: "123", Name: "Paneer Tikka", Price: 250}, s)
	})

	t.Run("List", func(t *testing.T) {
		all, err := ps.List(c)
		assert.NoError(t, err)
		assert.Equal(t, all, []Snack{snack})
	})

	t.Run("Delete", func(t *testing.T) {
		err := ps.Delete(c, snack.UID)
		assert.NoError(t, err)

		_, found, err := ps.Get(c, snack.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Transaction propagates error", func(t *testing.T) {
		err := ps.RunInTransaction(c, func(c context.Context) error {
			putErr := ps.Put(c, snack.UID, snack)
			assert.NoError(t, putErr)
			return fmt.Errorf("boom")
		})
		assert.Error(t, err)
	})
}
