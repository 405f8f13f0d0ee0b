// Package card classifies a user's current week into the three-state
// accountability card. The status is recomputed fresh from the week's
// counts; no history is kept.
package card

// Status is the weekly pass/fail classification.
type Status string

const (
	StatusNone   Status = "none" // all thresholds met
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// Weekly thresholds, one per habit.
const (
	GymThreshold     = 3
	SleepThreshold   = 5
	ProteinThreshold = 7
)

// WeekCounts are a single user's habit counts for the current week.
type WeekCounts struct {
	GymDays     int
	SleepDays   int
	ProteinDays int
}

// Evaluate maps the week's counts onto a card status: all three
// thresholds met is none, exactly two is yellow, anything less is red.
func Evaluate(c WeekCounts) Status {
	reached := 0
	if c.GymDays >= GymThreshold {
		reached++
	}
	if c.SleepDays >= SleepThreshold {
		reached++
	}
	if c.ProteinDays >= ProteinThreshold {
		reached++
	}

	switch reached {
	case 3:
		return StatusNone
	case 2:
		return StatusYellow
	default:
		return StatusRed
	}
}
