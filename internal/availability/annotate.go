package availability

import (
	"time"

	"navalha/internal/model"
)

// Annotate marks each slot's occupancy against the day's booked
// appointments and, when date is today in the resolver's timezone,
// its past-ness. The input slice is not mutated; an annotated copy
// is returned with order preserved.
//
// A slot [start, start+duration) is occupied when it overlaps any
// active appointment that starts on the same local calendar day.
// The half-open test covers all three cases: slot start inside an
// appointment, slot end inside one, or the slot containing one.
//
// A slot is past only on today's grid, and only when its start
// instant is strictly before now; a slot starting exactly now is
// still bookable.
func (r *Resolver) Annotate(slots []Slot, date time.Time, appointments []model.Appointment, durationMinutes int) []Slot {
	if len(slots) == 0 {
		return nil
	}

	duration := time.Duration(durationMinutes) * time.Minute
	if duration <= 0 {
		duration = DefaultStepMinutes * time.Minute
	}

	var dayAppointments []model.Appointment
	for i := range appointments {
		a := &appointments[i]
		if a.IsActive() && a.StartsOnDate(date, r.loc) {
			dayAppointments = append(dayAppointments, *a)
		}
	}

	now := r.now()
	isToday := model.SameDate(now.In(r.loc), date)

	out := make([]Slot, len(slots))
	for i, s := range slots {
		if s.LunchBreak {
			out[i] = s
			continue
		}

		slotStart := time.Date(date.Year(), date.Month(), date.Day(), s.startMin/60, s.startMin%60, 0, 0, r.loc)
		slotEnd := slotStart.Add(duration)

		for j := range dayAppointments {
			a := &dayAppointments[j]
			if a.StartTime.Before(slotEnd) && slotStart.Before(a.EndTime) {
				s.Occupied = true
				break
			}
		}

		if isToday && slotStart.Before(now) {
			s.Past = true
		}

		if s.Occupied || s.Past {
			s.Available = false
		}
		out[i] = s
	}

	return out
}

// AllPast reports whether every non-lunch slot has already started.
// Callers use it to decide whether today is offered at all.
func AllPast(slots []Slot) bool {
	for _, s := range slots {
		if s.LunchBreak {
			continue
		}
		if !s.Past {
			return false
		}
	}
	return true
}
