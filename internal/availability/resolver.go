// Package availability derives the bookable slot grid for one
// calendar day from a shop's weekly rules, date exceptions and
// existing appointments. All computation is pure and synchronous:
// identical inputs always produce identical grids, so callers may
// re-run it on every refresh.
package availability

import (
	"time"

	"navalha/internal/model"
)

// Resolver runs the availability pipeline with an explicit clock and
// timezone, so "today" and "past" checks stay deterministic in tests.
type Resolver struct {
	now func() time.Time
	loc *time.Location
}

// NewResolver creates a resolver using the wall clock in loc.
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{now: time.Now, loc: loc}
}

// SetClock overrides the time source. Tests use this to pin "now".
func (r *Resolver) SetClock(now func() time.Time) {
	r.now = now
}

// Location returns the resolver's timezone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Now returns the current instant in the resolver's timezone.
func (r *Resolver) Now() time.Time {
	return r.now().In(r.loc)
}

// Grid is the fully annotated result for one day and one optional
// barber filter.
type Grid struct {
	Date      string `json:"date"` // "2026-08-31"
	Closed    bool   `json:"closed"`
	BarberOff bool   `json:"barber_off"`
	AllPast   bool   `json:"all_past"`
	Slots     []Slot `json:"slots"`
}

// DayGrid runs the full pipeline: resolve the effective schedule,
// enumerate slots, annotate occupancy and past-ness. barberID zero
// means no staff filter. Closed days return an empty grid; a day
// where the filtered barber is off still lists the grid, with every
// slot unavailable.
func (r *Resolver) DayGrid(
	date time.Time,
	rules []model.WeeklyRule,
	exceptions []model.DateException,
	appointments []model.Appointment,
	stepMinutes, durationMinutes int,
	barberID int64,
) (*Grid, error) {
	grid := &Grid{Date: date.Format("2006-01-02")}

	sched := ResolveDay(date, rules, exceptions)
	if sched.Closed() {
		grid.Closed = true
		return grid, nil
	}
	grid.BarberOff = barberID != 0 && !sched.WorksOn(barberID)

	slots, err := r.Slots(sched, stepMinutes, durationMinutes, barberID)
	if err != nil {
		return nil, err
	}

	duration := durationMinutes
	if duration <= 0 {
		duration = stepMinutes
	}
	if duration <= 0 {
		duration = DefaultStepMinutes
	}

	grid.Slots = r.Annotate(slots, date, appointments, duration)
	grid.AllPast = AllPast(grid.Slots)
	return grid, nil
}
