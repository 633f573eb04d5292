package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartpark/models"
)

// UnitRate is the hourly parking fee. Every started hour bills in full.
const UnitRate = 2.50

// Operating window for entry times.
const (
	OpeningTime = "08:00"
	ClosingTime = "20:00"
)

// Estimated-duration bounds at creation time, in minutes. Extensions
// after creation have no upper bound.
const (
	DefaultEstimatedMinutes = 60
	MinEstimatedMinutes     = 15
	MaxEstimatedMinutes     = 240
)

// Ledger is the ordered collection of reservations for this process.
// Every mutation runs to completion under one lock and then mirrors the
// full ledger; a failed validation never touches the records, so the
// ledger is always left in its prior valid state.
type Ledger struct {
	mu      sync.Mutex
	records []models.Reservation
	mirror  Mirror
	now     func() time.Time
}

// NewLedger creates an empty ledger. mirror may be nil, in which case
// the ledger lives in memory only (a session with storage disabled).
func NewLedger(mirror Mirror) *Ledger {
	return &Ledger{mirror: mirror, now: time.Now}
}

// Create appends a new active reservation for a previously selected free
// slot. Ids come from a collision-checked random source, never from the
// wall clock, so rapid repeated calls stay unique.
func (l *Ledger) Create(ctx context.Context, selection int, entryTime string, minutes int, requester string) (models.Reservation, error) {
	if selection <= 0 {
		return models.Reservation{}, fmt.Errorf("%w: ningún espacio seleccionado", ErrValidation)
	}
	if strings.TrimSpace(entryTime) == "" {
		return models.Reservation{}, fmt.Errorf("%w: por favor selecciona una hora de entrada", ErrValidation)
	}
	if err := validateEntryTime(entryTime); err != nil {
		return models.Reservation{}, err
	}
	if minutes == 0 {
		minutes = DefaultEstimatedMinutes
	}
	if minutes < MinEstimatedMinutes || minutes > MaxEstimatedMinutes {
		return models.Reservation{}, fmt.Errorf("%w: el tiempo estimado debe estar entre %d y %d minutos", ErrValidation, MinEstimatedMinutes, MaxEstimatedMinutes)
	}
	if requester == "" {
		requester = models.GuestUser
	}

	record := models.Reservation{
		ID:            uuid.NewString(),
		SlotID:        selection,
		EntryTime:     entryTime,
		User:          requester,
		ConfirmedAt:   l.now(),
		Status:        models.ReservationActive,
		Vehicle:       models.VehiclePlaceholder,
		PaymentMethod: models.PaymentPending,
		EstimatedTime: minutes,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	l.save(ctx)
	log.Printf("Reservation %s created for slot %d by %s", record.ID, record.SlotID, record.User)
	return record, nil
}

// Extend adds minutes to the estimated time of a reservation. There is
// no upper bound once the reservation exists.
func (l *Ledger) Extend(ctx context.Context, id string, additionalMinutes int) (models.Reservation, error) {
	if additionalMinutes <= 0 {
		return models.Reservation{}, fmt.Errorf("%w: los minutos adicionales deben ser positivos", ErrValidation)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID != id {
			continue
		}
		l.records[i].EstimatedTime += additionalMinutes
		l.save(ctx)
		log.Printf("Reservation %s extended by %d minutes (now %d)", id, additionalMinutes, l.records[i].EstimatedTime)
		return l.records[i], nil
	}
	return models.Reservation{}, fmt.Errorf("%w: reserva %s", ErrNotFound, id)
}

// Pay marks an active reservation as paid. Paid is terminal: a second
// payment fails and leaves the payment method untouched.
func (l *Ledger) Pay(ctx context.Context, id, method string) (models.Reservation, error) {
	if method == "" {
		method = "Efectivo"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID != id {
			continue
		}
		if l.records[i].Status != models.ReservationActive {
			return models.Reservation{}, fmt.Errorf("%w: la reserva %s ya fue pagada", ErrInvalidTransition, id)
		}
		l.records[i].Status = models.ReservationPaid
		l.records[i].PaymentMethod = method
		l.save(ctx)
		log.Printf("Reservation %s paid with %s", id, method)
		return l.records[i], nil
	}
	return models.Reservation{}, fmt.Errorf("%w: reserva %s", ErrNotFound, id)
}

// Cancel removes a reservation from the ledger outright. Only active
// reservations can be cancelled; a paid one must not silently disappear.
func (l *Ledger) Cancel(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID != id {
			continue
		}
		if l.records[i].Status != models.ReservationActive {
			return fmt.Errorf("%w: una reserva pagada no puede cancelarse", ErrInvalidTransition)
		}
		l.records = append(l.records[:i], l.records[i+1:]...)
		l.save(ctx)
		log.Printf("Reservation %s cancelled", id)
		return nil
	}
	return fmt.Errorf("%w: reserva %s", ErrNotFound, id)
}

// Get returns one reservation by id.
func (l *Ledger) Get(id string) (models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reservation{}, fmt.Errorf("%w: reserva %s", ErrNotFound, id)
}

// List returns the full ledger in creation order.
func (l *Ledger) List() []models.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Reservation, len(l.records))
	copy(out, l.records)
	return out
}

// ListByUser filters the ledger by requester label.
func (l *Ledger) ListByUser(user string) []models.Reservation {
	if user == "" {
		user = models.GuestUser
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Reservation
	for _, r := range l.records {
		if r.User == user {
			out = append(out, r)
		}
	}
	return out
}

// Reload replaces the in-memory records with the mirrored snapshot.
// Called at startup and on cross-session change notifications; the last
// writer wins.
func (l *Ledger) Reload(ctx context.Context) error {
	if l.mirror == nil {
		return nil
	}
	records, err := l.mirror.Load(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.records = records
	l.mu.Unlock()
	return nil
}

// CheckOverstays reports active reservations that ran past their
// estimated time. Observational only: there is no expired status, an
// overstayed reservation simply keeps accruing billable hours.
func (l *Ledger) CheckOverstays(now time.Time) []models.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	var overstayed []models.Reservation
	for _, r := range l.records {
		if r.Status != models.ReservationActive {
			continue
		}
		if RemainingMinutes(r, now) < 0 {
			overstayed = append(overstayed, r)
			log.Printf("Reservation %s on slot %d overstayed: estimated %d minutes, elapsed %d",
				r.ID, r.SlotID, r.EstimatedTime, ElapsedMinutes(r, now))
		}
	}
	return overstayed
}

// save mirrors the full ledger. Caller holds the lock. A mirror failure
// is logged but does not undo the local mutation, matching the
// best-effort persistence of the storage channel.
func (l *Ledger) save(ctx context.Context) {
	if l.mirror == nil {
		return
	}
	records := make([]models.Reservation, len(l.records))
	copy(records, l.records)
	if err := l.mirror.Save(ctx, records); err != nil {
		log.Printf("Failed to mirror reservation ledger: %v", err)
	}
}

func validateEntryTime(entryTime string) error {
	t, err := time.Parse("15:04", entryTime)
	if err != nil {
		return fmt.Errorf("%w: la hora de entrada debe tener formato HH:MM", ErrValidation)
	}
	open, _ := time.Parse("15:04", OpeningTime)
	closing, _ := time.Parse("15:04", ClosingTime)
	if t.Before(open) || t.After(closing) {
		return fmt.Errorf("%w: la hora de entrada debe estar entre %s y %s", ErrValidation, OpeningTime, ClosingTime)
	}
	return nil
}

// ElapsedMinutes rounds to whole minutes and never goes below zero when
// clocks skew.
func ElapsedMinutes(r models.Reservation, now time.Time) int {
	mins := int(math.Round(now.Sub(r.ConfirmedAt).Minutes()))
	if mins < 0 {
		mins = 0
	}
	return mins
}

// ElapsedString renders elapsed time the way the reservation views show
// it: "45 minutos", "1 hora", "1 hora y 30 minutos". A zero-minute
// remainder is omitted and singular forms are used for one unit.
func ElapsedString(r models.Reservation, now time.Time) string {
	mins := ElapsedMinutes(r, now)
	if mins < 60 {
		return fmt.Sprintf("%d %s", mins, pluralizeEs(mins, "minuto"))
	}
	hours := mins / 60
	rem := mins % 60
	s := fmt.Sprintf("%d %s", hours, pluralizeEs(hours, "hora"))
	if rem > 0 {
		s += fmt.Sprintf(" y %d %s", rem, pluralizeEs(rem, "minuto"))
	}
	return s
}

// AmountDue bills every started hour in full at UnitRate, rounded to
// two decimals. Cost follows whole elapsed minutes: exactly n hours
// bills n hours, any minute past it bills the next one.
func AmountDue(r models.Reservation, now time.Time) float64 {
	hours := math.Ceil(float64(ElapsedMinutes(r, now)) / 60)
	return math.Round(hours*UnitRate*100) / 100
}

// RemainingMinutes is the estimated time still on the clock; negative
// means the reservation ran over.
func RemainingMinutes(r models.Reservation, now time.Time) int {
	return r.EstimatedTime - ElapsedMinutes(r, now)
}

func pluralizeEs(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
