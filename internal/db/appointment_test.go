package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navalha/internal/model"
)

func seedBarber(t *testing.T, database *DB) *model.Barber {
	t.Helper()
	b := &model.Barber{Name: "Rafael"}
	require.NoError(t, database.CreateBarber(context.Background(), b))
	return b
}

func seedAppointment(t *testing.T, database *DB, barberID int64, start, end time.Time) *model.Appointment {
	t.Helper()
	a := &model.Appointment{
		Code:       "code-" + start.Format("20060102150405"),
		BarberID:   barberID,
		ClientName: "Cliente",
		StartTime:  start,
		EndTime:    end,
		Status:     model.AppointmentStatusConfirmed,
	}
	require.NoError(t, database.CreateAppointment(context.Background(), a))
	return a
}

func TestIsSlotFree(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	barber := seedBarber(t, database)

	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	seedAppointment(t, database, barber.ID, day.Add(9*time.Hour), day.Add(9*time.Hour+30*time.Minute))

	tests := []struct {
		name       string
		start, end time.Time
		free       bool
	}{
		{"exact collision", day.Add(9 * time.Hour), day.Add(9*time.Hour + 30*time.Minute), false},
		{"front overlap", day.Add(8*time.Hour + 45*time.Minute), day.Add(9*time.Hour + 15*time.Minute), false},
		{"containing window", day.Add(8 * time.Hour), day.Add(11 * time.Hour), false},
		{"touching before", day.Add(8*time.Hour + 30*time.Minute), day.Add(9 * time.Hour), true},
		{"touching after", day.Add(9*time.Hour + 30*time.Minute), day.Add(10 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free, err := database.IsSlotFree(ctx, barber.ID, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.free, free)
		})
	}

	// Another barber is unaffected.
	free, err := database.IsSlotFree(ctx, barber.ID+1, day.Add(9*time.Hour), day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestCancelFreesSlot(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	barber := seedBarber(t, database)

	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	a := seedAppointment(t, database, barber.ID, day.Add(9*time.Hour), day.Add(10*time.Hour))

	require.NoError(t, database.CancelAppointmentByCode(ctx, a.Code))

	free, err := database.IsSlotFree(ctx, barber.ID, day.Add(9*time.Hour), day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, free, "canceled appointment no longer occupies its slot")

	// Canceling twice reports no rows.
	assert.ErrorIs(t, database.CancelAppointmentByCode(ctx, a.Code), sql.ErrNoRows)
}

func TestListAppointmentsForDay(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	barber := seedBarber(t, database)
	other := &model.Barber{Name: "Diego"}
	require.NoError(t, database.CreateBarber(ctx, other))

	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	seedAppointment(t, database, barber.ID, day.Add(9*time.Hour), day.Add(10*time.Hour))
	seedAppointment(t, database, other.ID, day.Add(11*time.Hour), day.Add(12*time.Hour))
	seedAppointment(t, database, barber.ID, day.AddDate(0, 0, 1).Add(9*time.Hour), day.AddDate(0, 0, 1).Add(10*time.Hour))

	all, err := database.ListAppointmentsForDay(ctx, 0, day)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := database.ListAppointmentsForDay(ctx, barber.ID, day)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, barber.ID, mine[0].BarberID)
}

func TestReminderQueue(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	barber := seedBarber(t, database)

	soon := time.Now().Add(2 * time.Hour)
	a := &model.Appointment{
		Code:         "remind-me",
		BarberID:     barber.ID,
		ClientName:   "Cliente",
		ClientChatID: 555,
		StartTime:    soon,
		EndTime:      soon.Add(30 * time.Minute),
		Status:       model.AppointmentStatusConfirmed,
	}
	require.NoError(t, database.CreateAppointment(ctx, a))

	// Without a chat id there is nothing to notify.
	seedAppointment(t, database, barber.ID, soon.Add(time.Hour), soon.Add(90*time.Minute))

	due, err := database.ListUpcomingUnreminded(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, a.Code, due[0].Code)

	require.NoError(t, database.MarkReminderSent(ctx, a.ID))

	due, err = database.ListUpcomingUnreminded(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestCatalogCRUD(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	b := &model.Barber{Name: "Ana", Phone: "+55 11 99999-0000"}
	require.NoError(t, database.CreateBarber(ctx, b))
	require.NotZero(t, b.ID)

	s := &model.Service{Name: "Corte", DurationMinutes: 30, PriceCents: 5000}
	require.NoError(t, database.CreateService(ctx, s))

	barbers, err := database.ListActiveBarbers(ctx)
	require.NoError(t, err)
	assert.Len(t, barbers, 1)

	services, err := database.ListActiveServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, 30, services[0].DurationMinutes)

	require.NoError(t, database.DeactivateBarber(ctx, b.ID))
	barbers, err = database.ListActiveBarbers(ctx)
	require.NoError(t, err)
	assert.Empty(t, barbers)

	require.NoError(t, database.DeactivateService(ctx, s.ID))
	services, err = database.ListActiveServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, services)
}
