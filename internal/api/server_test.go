package api

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"navalha/internal/availability"
	"navalha/internal/cache"
	"navalha/internal/config"
	"navalha/internal/db"
	"navalha/internal/model"
)

// fixedNow pins the clock for every API test: a Wednesday at noon.
var fixedNow = time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()

	database, err := db.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	resolver := availability.NewResolver(time.UTC)
	resolver.SetClock(func() time.Time { return fixedNow })

	cfg := &config.Config{}
	cfg.Booking.SlotMinutes = 30

	log := zerolog.Nop()
	server := NewServer(database, resolver, cache.New(nil, 0), cfg, &log)
	return server, database
}

func seedThursdayRule(t *testing.T, database *db.DB) {
	t.Helper()
	rule := &model.WeeklyRule{
		Weekday:    time.Thursday,
		OpensAt:    "09:00",
		ClosesAt:   "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}
	if err := database.UpsertWeeklyRule(context.Background(), rule); err != nil {
		t.Fatalf("failed to seed weekly rule: %v", err)
	}
}

func seedTestBarber(t *testing.T, database *db.DB, name string) int64 {
	t.Helper()
	barber := &model.Barber{Name: name}
	if err := database.CreateBarber(context.Background(), barber); err != nil {
		t.Fatalf("failed to seed barber: %v", err)
	}
	return barber.ID
}
