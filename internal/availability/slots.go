package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultStepMinutes is the slot grid step when none is configured.
const DefaultStepMinutes = 30

// Slot is a candidate appointment start time within a day's hours.
// Derived on every call, never stored.
type Slot struct {
	Start      string `json:"start"` // "09:00"
	End        string `json:"end"`   // "09:30"
	Occupied   bool   `json:"occupied"`
	Past       bool   `json:"past"`
	LunchBreak bool   `json:"lunch_break"`
	Available  bool   `json:"available"`
	Shift      Shift  `json:"shift"`

	startMin int
	endMin   int
}

// ScheduleDataError reports a malformed time string in upstream
// schedule data. The management surface validates at entry time, so
// hitting this means the stored rule itself is broken.
type ScheduleDataError struct {
	Field string
	Value string
}

func (e *ScheduleDataError) Error() string {
	return fmt.Sprintf("schedule data: invalid %s %q", e.Field, e.Value)
}

// Slots expands sched into the chronological slot grid for one day.
//
// The walk goes from opensAt to closesAt in step increments. Starts
// whose [start, start+duration) window would overlap the lunch
// interval produce no ordinary slot; instead a single collapsed
// placeholder spanning the whole lunch interval is emitted when the
// walk reaches lunchStart, and the walk resumes at lunchEnd. A slot
// is emitted only when start+duration fits before closesAt, so a
// duration longer than the open window yields an empty grid.
//
// When barberID is non-zero and the schedule's roster excludes it,
// every slot is emitted with Available=false: the grid is still
// shown, grayed out.
func (r *Resolver) Slots(sched *DaySchedule, stepMinutes, durationMinutes int, barberID int64) ([]Slot, error) {
	if sched.Closed() {
		return nil, nil
	}

	step := stepMinutes
	if step <= 0 {
		step = DefaultStepMinutes
	}
	duration := durationMinutes
	if duration <= 0 {
		duration = step
	}

	open, err := parseClock("opens_at", sched.OpensAt)
	if err != nil {
		return nil, err
	}
	closing, err := parseClock("closes_at", sched.ClosesAt)
	if err != nil {
		return nil, err
	}

	var lunchStart, lunchEnd int
	hasLunch := sched.HasLunch()
	if hasLunch {
		if lunchStart, err = parseClock("lunch_start", sched.LunchStart); err != nil {
			return nil, err
		}
		if lunchEnd, err = parseClock("lunch_end", sched.LunchEnd); err != nil {
			return nil, err
		}
	}

	available := barberID == 0 || sched.WorksOn(barberID)

	var slots []Slot
	lunchEmitted := false
	for cur := open; cur < closing; cur += step {
		if hasLunch && cur < lunchEnd && cur+duration > lunchStart {
			if !lunchEmitted && cur >= lunchStart {
				slots = append(slots, Slot{
					Start:      formatClock(lunchStart),
					End:        formatClock(lunchEnd),
					LunchBreak: true,
					Shift:      shiftFor(lunchStart),
					startMin:   lunchStart,
					endMin:     lunchEnd,
				})
				lunchEmitted = true
				cur = lunchEnd - step // resume at lunchEnd
			}
			continue
		}

		if cur+duration > closing {
			break
		}

		slots = append(slots, Slot{
			Start:     formatClock(cur),
			End:       formatClock(cur + duration),
			Available: available,
			Shift:     shiftFor(cur),
			startMin:  cur,
			endMin:    cur + duration,
		})
	}

	return slots, nil
}

func parseClock(field, value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, &ScheduleDataError{Field: field, Value: value}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, &ScheduleDataError{Field: field, Value: value}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, &ScheduleDataError{Field: field, Value: value}
	}
	return hour*60 + minute, nil
}

func formatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
