package models

// Slot is one parking space in the selection catalog. Occupancy is fixed
// at startup and never flipped by the reservation flow; it is mock data
// until real occupancy sensing lands.
type Slot struct {
	ID       int    `json:"id"`
	Occupied bool   `json:"occupied"`
	Occupant string `json:"occupant,omitempty"`
}
