package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogParity(t *testing.T) {
	c := NewCatalog(6)
	slots := c.ListSlots()
	require.Len(t, slots, 6)

	for i, slot := range slots {
		assert.Equal(t, i+1, slot.ID)
		if slot.ID%2 != 0 {
			assert.True(t, slot.Occupied, "slot %d should start occupied", slot.ID)
			assert.Equal(t, fmt.Sprintf("Usuario%d", slot.ID), slot.Occupant)
		} else {
			assert.False(t, slot.Occupied, "slot %d should start free", slot.ID)
			assert.Empty(t, slot.Occupant)
		}
	}
}

func TestNewCatalogDefaultSize(t *testing.T) {
	assert.Len(t, NewCatalog(0).ListSlots(), DefaultCatalogSize)
	assert.Len(t, NewCatalog(-3).ListSlots(), DefaultCatalogSize)
	assert.Len(t, NewCatalog(10).ListSlots(), 10)
}

func TestSelectSlot(t *testing.T) {
	c := NewCatalog(6)

	id, err := c.SelectSlot(2)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	_, err = c.SelectSlot(3)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = c.SelectSlot(99)
	assert.ErrorIs(t, err, ErrNotFound)

	// Selecting never flips occupancy.
	id, err = c.SelectSlot(2)
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestListSlotsReturnsCopy(t *testing.T) {
	c := NewCatalog(4)
	slots := c.ListSlots()
	slots[1].Occupied = true

	fresh := c.ListSlots()
	assert.False(t, fresh[1].Occupied, "mutating the returned slice must not affect the catalog")
}
