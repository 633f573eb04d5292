package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpark/models"
)

// memoryMirror records saves and serves loads, standing in for Redis.
type memoryMirror struct {
	snapshot []models.Reservation
	saves    int
}

func (m *memoryMirror) Save(ctx context.Context, records []models.Reservation) error {
	m.snapshot = make([]models.Reservation, len(records))
	copy(m.snapshot, records)
	m.saves++
	return nil
}

func (m *memoryMirror) Load(ctx context.Context) ([]models.Reservation, error) {
	return m.snapshot, nil
}

func newTestLedger(at time.Time) *Ledger {
	l := NewLedger(nil)
	l.now = func() time.Time { return at }
	return l
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	l := newTestLedger(start)

	r, err := l.Create(ctx, 2, "09:30", 0, "")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 2, r.SlotID)
	assert.Equal(t, "09:30", r.EntryTime)
	assert.Equal(t, models.GuestUser, r.User)
	assert.Equal(t, models.ReservationActive, r.Status)
	assert.Equal(t, models.PaymentPending, r.PaymentMethod)
	assert.Equal(t, models.VehiclePlaceholder, r.Vehicle)
	assert.Equal(t, DefaultEstimatedMinutes, r.EstimatedTime)
	assert.Equal(t, start, r.ConfirmedAt)
	assert.Len(t, l.List(), 1)
}

func TestCreateReservationUniqueIDs(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		r, err := l.Create(ctx, 1, "10:00", 30, "ana")
		require.NoError(t, err)
		assert.False(t, seen[r.ID], "duplicate reservation id %s", r.ID)
		seen[r.ID] = true
	}
	assert.Len(t, l.List(), 200)
}

func TestCreateReservationValidation(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	cases := []struct {
		name      string
		selection int
		entryTime string
		minutes   int
	}{
		{"sin espacio", 0, "10:00", 60},
		{"sin hora de entrada", 3, "", 60},
		{"hora con espacios", 3, "   ", 60},
		{"formato inválido", 3, "10h30", 60},
		{"antes de abrir", 3, "07:59", 60},
		{"después de cerrar", 3, "20:01", 60},
		{"tiempo muy corto", 3, "10:00", 14},
		{"tiempo muy largo", 3, "10:00", 241},
		{"tiempo negativo", 3, "10:00", -30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Create(ctx, tc.selection, tc.entryTime, tc.minutes, "")
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, l.List(), "failed create must not touch the ledger")
		})
	}
}

func TestCreateReservationWindowBounds(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	for _, entry := range []string{OpeningTime, ClosingTime, "12:00"} {
		_, err := l.Create(ctx, 1, entry, 60, "")
		assert.NoError(t, err, "entry time %s is inside the window", entry)
	}
}

func TestExtendReservation(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	r, err := l.Create(ctx, 1, "10:00", 30, "")
	require.NoError(t, err)

	r, err = l.Extend(ctx, r.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 60, r.EstimatedTime)

	r, err = l.Extend(ctx, r.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 120, r.EstimatedTime)

	// Past the creation cap: extensions have no upper bound.
	r, err = l.Extend(ctx, r.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, 420, r.EstimatedTime)

	_, err = l.Extend(ctx, r.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = l.Extend(ctx, r.ID, -15)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = l.Extend(ctx, "no-such-id", 30)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := l.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 420, got.EstimatedTime, "failed extends must not change the record")
}

func TestPayReservation(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	r, err := l.Create(ctx, 4, "11:00", 60, "luis")
	require.NoError(t, err)

	paid, err := l.Pay(ctx, r.ID, "Tarjeta")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPaid, paid.Status)
	assert.Equal(t, "Tarjeta", paid.PaymentMethod)

	_, err = l.Pay(ctx, r.ID, "Efectivo")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := l.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta", got.PaymentMethod, "second payment must not overwrite the method")

	_, err = l.Pay(ctx, "no-such-id", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPayReservationDefaultMethod(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	r, err := l.Create(ctx, 4, "11:00", 60, "")
	require.NoError(t, err)

	paid, err := l.Pay(ctx, r.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Efectivo", paid.PaymentMethod)
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	a, err := l.Create(ctx, 1, "10:00", 60, "")
	require.NoError(t, err)
	b, err := l.Create(ctx, 2, "10:00", 60, "")
	require.NoError(t, err)

	require.NoError(t, l.Cancel(ctx, a.ID))
	records := l.List()
	require.Len(t, records, 1)
	assert.Equal(t, b.ID, records[0].ID)

	assert.ErrorIs(t, l.Cancel(ctx, a.ID), ErrNotFound)

	_, err = l.Pay(ctx, b.ID, "")
	require.NoError(t, err)
	assert.ErrorIs(t, l.Cancel(ctx, b.ID), ErrInvalidTransition)
	assert.Len(t, l.List(), 1, "a paid reservation must stay in the ledger")
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	_, err := l.Create(ctx, 1, "10:00", 60, "ana")
	require.NoError(t, err)
	_, err = l.Create(ctx, 2, "10:00", 60, "")
	require.NoError(t, err)
	_, err = l.Create(ctx, 3, "10:00", 60, "ana")
	require.NoError(t, err)

	assert.Len(t, l.ListByUser("ana"), 2)
	assert.Len(t, l.ListByUser(""), 1)
	assert.Len(t, l.ListByUser(models.GuestUser), 1)
	assert.Empty(t, l.ListByUser("nadie"))
}

func TestAmountDue(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r := models.Reservation{ConfirmedAt: start}

	cases := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{1 * time.Minute, 2.50},
		{59 * time.Minute, 2.50},
		{60 * time.Minute, 2.50},
		{61 * time.Minute, 5.00},
		{120 * time.Minute, 5.00},
		{121 * time.Minute, 7.50},
		{-5 * time.Minute, 0},
	}
	for _, tc := range cases {
		got := AmountDue(r, start.Add(tc.elapsed))
		assert.Equal(t, tc.want, got, "elapsed %v", tc.elapsed)
	}
}

func TestAmountDueMonotonic(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r := models.Reservation{ConfirmedAt: start}

	prev := 0.0
	for m := 0; m <= 360; m += 7 {
		due := AmountDue(r, start.Add(time.Duration(m)*time.Minute))
		assert.GreaterOrEqual(t, due, prev, "amount due dropped at minute %d", m)
		prev = due
	}
}

func TestElapsedString(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r := models.Reservation{ConfirmedAt: start}

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "0 minutos"},
		{1 * time.Minute, "1 minuto"},
		{45 * time.Minute, "45 minutos"},
		{60 * time.Minute, "1 hora"},
		{90 * time.Minute, "1 hora y 30 minutos"},
		{61 * time.Minute, "1 hora y 1 minuto"},
		{120 * time.Minute, "2 horas"},
		{150 * time.Minute, "2 horas y 30 minutos"},
		{-10 * time.Minute, "0 minutos"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ElapsedString(r, start.Add(tc.elapsed)), "elapsed %v", tc.elapsed)
	}
}

func TestRemainingMinutes(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r := models.Reservation{ConfirmedAt: start, EstimatedTime: 60}

	assert.Equal(t, 60, RemainingMinutes(r, start))
	assert.Equal(t, 15, RemainingMinutes(r, start.Add(45*time.Minute)))
	assert.Equal(t, -30, RemainingMinutes(r, start.Add(90*time.Minute)))
}

func TestCheckOverstays(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	l := newTestLedger(start)

	short, err := l.Create(ctx, 1, "09:00", 30, "")
	require.NoError(t, err)
	long, err := l.Create(ctx, 2, "09:00", 240, "")
	require.NoError(t, err)
	paid, err := l.Create(ctx, 3, "09:00", 15, "")
	require.NoError(t, err)
	_, err = l.Pay(ctx, paid.ID, "")
	require.NoError(t, err)

	overstayed := l.CheckOverstays(start.Add(45 * time.Minute))
	require.Len(t, overstayed, 1)
	assert.Equal(t, short.ID, overstayed[0].ID)
	assert.NotEqual(t, long.ID, overstayed[0].ID)

	assert.Empty(t, l.CheckOverstays(start.Add(10*time.Minute)))
}

func TestLedgerMirrorsEveryMutation(t *testing.T) {
	ctx := context.Background()
	mirror := &memoryMirror{}
	l := NewLedger(mirror)
	l.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	r, err := l.Create(ctx, 1, "10:00", 60, "ana")
	require.NoError(t, err)
	assert.Equal(t, 1, mirror.saves)

	_, err = l.Extend(ctx, r.ID, 30)
	require.NoError(t, err)
	_, err = l.Pay(ctx, r.ID, "Tarjeta")
	require.NoError(t, err)
	assert.Equal(t, 3, mirror.saves)

	require.Len(t, mirror.snapshot, 1)
	assert.Equal(t, models.ReservationPaid, mirror.snapshot[0].Status)
	assert.Equal(t, 90, mirror.snapshot[0].EstimatedTime)
}

func TestLedgerReloadAcrossSessions(t *testing.T) {
	ctx := context.Background()
	mirror := &memoryMirror{}

	first := NewLedger(mirror)
	first.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	r, err := first.Create(ctx, 5, "09:30", 120, "ana")
	require.NoError(t, err)

	second := NewLedger(mirror)
	require.NoError(t, second.Reload(ctx))
	records := second.List()
	require.Len(t, records, 1)
	assert.Equal(t, r.ID, records[0].ID)

	// The second session cancels; reloading the first converges on it.
	require.NoError(t, second.Cancel(ctx, r.ID))
	require.NoError(t, first.Reload(ctx))
	assert.Empty(t, first.List())
}

func TestLedgerWithoutMirror(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(time.Now())

	r, err := l.Create(ctx, 1, "10:00", 60, "")
	require.NoError(t, err)
	require.NoError(t, l.Reload(ctx))

	// Reload without a mirror keeps the in-memory records.
	got, err := l.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}
