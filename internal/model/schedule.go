package model

import "time"

// WeeklyRule is the default operating hours for one weekday.
// At most one active rule exists per weekday; an empty BarberIDs
// list means every barber works that day.
type WeeklyRule struct {
	ID         int64        `json:"id"`
	Weekday    time.Weekday `json:"weekday"`
	OpensAt    string       `json:"opens_at"`  // "09:00"
	ClosesAt   string       `json:"closes_at"` // "19:00"
	LunchStart string       `json:"lunch_start,omitempty"`
	LunchEnd   string       `json:"lunch_end,omitempty"`
	IsClosed   bool         `json:"is_closed"`
	BarberIDs  []int64      `json:"barber_ids,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// HasLunch reports whether the rule carries a lunch interval.
func (r *WeeklyRule) HasLunch() bool {
	return r.LunchStart != "" && r.LunchEnd != ""
}

// AppliesTo reports whether barberID works under this rule.
func (r *WeeklyRule) AppliesTo(barberID int64) bool {
	return rosterIncludes(r.BarberIDs, barberID)
}

// DateException overrides the weekly rule for one specific calendar date,
// e.g. a holiday closure or special hours. At most one per date.
type DateException struct {
	ID         int64        `json:"id"`
	Date       time.Time    `json:"date"` // calendar date; time-of-day is ignored
	Weekday    time.Weekday `json:"weekday"`
	OpensAt    string       `json:"opens_at"`
	ClosesAt   string       `json:"closes_at"`
	LunchStart string       `json:"lunch_start,omitempty"`
	LunchEnd   string       `json:"lunch_end,omitempty"`
	IsClosed   bool         `json:"is_closed"`
	BarberIDs  []int64      `json:"barber_ids,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// HasLunch reports whether the exception carries a lunch interval.
func (e *DateException) HasLunch() bool {
	return e.LunchStart != "" && e.LunchEnd != ""
}

// AppliesTo reports whether barberID works under this exception.
func (e *DateException) AppliesTo(barberID int64) bool {
	return rosterIncludes(e.BarberIDs, barberID)
}

func rosterIncludes(ids []int64, barberID int64) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == barberID {
			return true
		}
	}
	return false
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
