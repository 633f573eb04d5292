package services

import (
	"fmt"

	"smartpark/models"
)

// DefaultCatalogSize matches the pilot lot: six spaces.
const DefaultCatalogSize = 6

// Catalog is the fixed slot list shown on the selection screen. It is
// generated once per process and never mutated by the reservation flow:
// odd ids start occupied, even ids start free. Until occupancy comes from
// a real source of truth, reserving a slot does not flip its state here.
type Catalog struct {
	slots []models.Slot
}

// NewCatalog generates size slots with parity-based mock occupancy.
func NewCatalog(size int) *Catalog {
	if size <= 0 {
		size = DefaultCatalogSize
	}
	slots := make([]models.Slot, size)
	for i := range slots {
		id := i + 1
		slot := models.Slot{ID: id}
		if id%2 != 0 {
			slot.Occupied = true
			slot.Occupant = fmt.Sprintf("Usuario%d", id)
		}
		slots[i] = slot
	}
	return &Catalog{slots: slots}
}

// ListSlots returns the catalog in id order. Callers get a copy.
func (c *Catalog) ListSlots() []models.Slot {
	out := make([]models.Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// SelectSlot validates a pending selection and returns the chosen id.
// Selecting a free slot has no side effect on the catalog.
func (c *Catalog) SelectSlot(id int) (int, error) {
	for _, slot := range c.slots {
		if slot.ID != id {
			continue
		}
		if slot.Occupied {
			return 0, fmt.Errorf("%w: el espacio #%d ya está ocupado por %s", ErrSlotUnavailable, slot.ID, slot.Occupant)
		}
		return slot.ID, nil
	}
	return 0, fmt.Errorf("%w: espacio #%d", ErrNotFound, id)
}
