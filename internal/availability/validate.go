package availability

import "fmt"

// ValidateHours checks the invariants a schedule rule must hold
// before it is stored: opensAt before closesAt, and when a lunch
// interval is present, lunchStart before lunchEnd with both inside
// the open window. The engine itself assumes stored rules are valid;
// this is the entry-time check the management surface runs.
func ValidateHours(opensAt, closesAt, lunchStart, lunchEnd string) error {
	open, err := parseClock("opens_at", opensAt)
	if err != nil {
		return err
	}
	closing, err := parseClock("closes_at", closesAt)
	if err != nil {
		return err
	}
	if open >= closing {
		return fmt.Errorf("opens_at %s must be before closes_at %s", opensAt, closesAt)
	}

	hasLunch := lunchStart != "" || lunchEnd != ""
	if !hasLunch {
		return nil
	}
	if lunchStart == "" || lunchEnd == "" {
		return fmt.Errorf("lunch interval needs both start and end")
	}
	ls, err := parseClock("lunch_start", lunchStart)
	if err != nil {
		return err
	}
	le, err := parseClock("lunch_end", lunchEnd)
	if err != nil {
		return err
	}
	if ls >= le {
		return fmt.Errorf("lunch_start %s must be before lunch_end %s", lunchStart, lunchEnd)
	}
	if ls < open || le > closing {
		return fmt.Errorf("lunch %s-%s must fall within %s-%s", lunchStart, lunchEnd, opensAt, closesAt)
	}
	return nil
}
