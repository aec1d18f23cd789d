package availability

// Shift is a coarse slot grouping for display.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// ClassifyShift maps an "HH:MM" start time to its shift. Fixed
// thresholds: before 13:00 is morning, 13:00 to 17:59 afternoon,
// 18:00 onward evening.
func ClassifyShift(clock string) Shift {
	min, err := parseClock("time", clock)
	if err != nil {
		return ShiftMorning
	}
	return shiftFor(min)
}

func shiftFor(min int) Shift {
	switch hour := min / 60; {
	case hour < 13:
		return ShiftMorning
	case hour < 18:
		return ShiftAfternoon
	default:
		return ShiftEvening
	}
}
