package availability

import (
	"time"

	"navalha/internal/model"
)

// DaySchedule is the single schedule that governs one calendar date:
// the date exception when one exists, otherwise the weekly rule for
// that weekday. A nil DaySchedule means the day has no schedule at
// all and is treated as closed.
type DaySchedule struct {
	OpensAt       string
	ClosesAt      string
	LunchStart    string
	LunchEnd      string
	IsClosed      bool
	BarberIDs     []int64
	FromException bool
}

// ResolveDay returns the schedule governing date. Exceptions are
// matched by calendar day (not instant) and always win over the
// weekly default. Absence is a valid result, not an error: a day
// with neither an exception nor a weekly rule is simply closed.
func ResolveDay(date time.Time, rules []model.WeeklyRule, exceptions []model.DateException) *DaySchedule {
	weekday := date.Weekday()

	for i := range exceptions {
		ex := &exceptions[i]
		if !model.SameDate(ex.Date, date) || ex.Weekday != weekday {
			continue
		}
		return &DaySchedule{
			OpensAt:       ex.OpensAt,
			ClosesAt:      ex.ClosesAt,
			LunchStart:    ex.LunchStart,
			LunchEnd:      ex.LunchEnd,
			IsClosed:      ex.IsClosed,
			BarberIDs:     ex.BarberIDs,
			FromException: true,
		}
	}

	for i := range rules {
		r := &rules[i]
		if r.Weekday != weekday {
			continue
		}
		return &DaySchedule{
			OpensAt:    r.OpensAt,
			ClosesAt:   r.ClosesAt,
			LunchStart: r.LunchStart,
			LunchEnd:   r.LunchEnd,
			IsClosed:   r.IsClosed,
			BarberIDs:  r.BarberIDs,
		}
	}

	return nil
}

// Closed reports whether the day takes no appointments at all.
func (d *DaySchedule) Closed() bool {
	return d == nil || d.IsClosed
}

// HasLunch reports whether the schedule carries a lunch interval.
func (d *DaySchedule) HasLunch() bool {
	return d != nil && d.LunchStart != "" && d.LunchEnd != ""
}

// WorksOn reports whether barberID works under this schedule. An
// empty roster means every barber works. A barber not on the roster
// is a distinct outcome from a closed day: the shop is open, that
// one barber is off.
func (d *DaySchedule) WorksOn(barberID int64) bool {
	if d == nil {
		return false
	}
	if len(d.BarberIDs) == 0 {
		return true
	}
	for _, id := range d.BarberIDs {
		if id == barberID {
			return true
		}
	}
	return false
}
