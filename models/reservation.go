package models

import "time"

// Reservation status values. A reservation is either waiting to be paid
// or already paid; cancellation removes the record instead of marking it.
const (
	ReservationActive = "active"
	ReservationPaid   = "paid"
)

// PaymentPending is the payment_method placeholder until Pay runs.
const PaymentPending = "Pendiente"

// GuestUser labels reservations made without a signed-in session.
const GuestUser = "Invitado"

// VehiclePlaceholder is stored on every reservation. The confirmation
// form never collects a plate, so the product keeps this sample value.
const VehiclePlaceholder = "ABC-1234"

// Reservation is one parking session. JSON field names match the
// mirrored ledger payload, so a snapshot read from the mirror is
// byte-compatible with what other sessions wrote.
type Reservation struct {
	ID            string    `json:"id"`
	SlotID        int       `json:"slotId"`
	EntryTime     string    `json:"entryTime"`
	User          string    `json:"user"`
	ConfirmedAt   time.Time `json:"confirmedAt"`
	Status        string    `json:"status"`
	Vehicle       string    `json:"vehicle"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes"`
	EstimatedTime int       `json:"estimatedTime"` // minutes
}

// ReservationDetail is the detail-view payload: the record plus its
// time and cost derivations at request time.
type ReservationDetail struct {
	Reservation
	Elapsed          string  `json:"elapsed"`
	AmountDue        float64 `json:"amount_due"`
	RemainingMinutes int     `json:"remaining_minutes"`
}
