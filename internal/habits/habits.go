package habits

import "pact/internal/calendar"

// State is the per-day outcome of one habit.
type State string

const (
	StateEmpty    State = "empty"
	StateComplete State = "complete"
	StateMissed   State = "missed"
)

const (
	// ProteinGoalGrams is the daily protein goal; a day at or above it
	// counts as a protein hit for both the habit grid and the leaderboard.
	ProteinGoalGrams = 100.0

	// GroupConsistencyThreshold is the active-member ratio at which a
	// group day counts as complete.
	GroupConsistencyThreshold = 0.6
)

// BucketByDay groups items by their day key.
func BucketByDay[T any](items []T, dayOf func(T) string) map[string][]T {
	out := make(map[string][]T, len(items))
	for _, item := range items {
		day := dayOf(item)
		out[day] = append(out[day], item)
	}
	return out
}

// States builds the week's seven habit states from sparse records.
// A day with no record is empty; with records it is complete when done
// is true for at least one of them (OR-merge across duplicate rows).
func States[T any](records []T, weekStartKey string, dayOf func(T) string, done func(T) bool) [7]State {
	byDay := BucketByDay(records, dayOf)

	var states [7]State
	for i, day := range calendar.WeekDays(weekStartKey) {
		rows, ok := byDay[day]
		if !ok || len(rows) == 0 {
			states[i] = StateEmpty
			continue
		}
		states[i] = StateMissed
		for _, r := range rows {
			if done(r) {
				states[i] = StateComplete
				break
			}
		}
	}
	return states
}

// Presence marks that a member produced at least one activity record on a day.
type Presence struct {
	Day    string
	UserID uint64
}

// GroupConsistency rates each week day by the fraction of distinct
// members active that day: empty with no activity, complete at or above
// the threshold, missed otherwise. An empty roster yields all-empty.
func GroupConsistency(presences []Presence, weekStartKey string, memberCount int) [7]State {
	activeByDay := make(map[string]map[uint64]struct{})
	for _, p := range presences {
		set, ok := activeByDay[p.Day]
		if !ok {
			set = make(map[uint64]struct{})
			activeByDay[p.Day] = set
		}
		set[p.UserID] = struct{}{}
	}

	var states [7]State
	for i, day := range calendar.WeekDays(weekStartKey) {
		active := len(activeByDay[day])
		if active == 0 || memberCount == 0 {
			states[i] = StateEmpty
			continue
		}
		if float64(active)/float64(memberCount) >= GroupConsistencyThreshold {
			states[i] = StateComplete
		} else {
			states[i] = StateMissed
		}
	}
	return states
}

// UniqueDays counts distinct day keys. Attendance is always counted by
// distinct day, never by row: three check-ins on one day are one session.
func UniqueDays(dayKeys []string) int {
	seen := make(map[string]struct{}, len(dayKeys))
	for _, day := range dayKeys {
		seen[day] = struct{}{}
	}
	return len(seen)
}

// ProteinHit reports whether a day's aggregated protein meets the goal.
func ProteinHit(proteinGrams float64) bool {
	return proteinGrams >= ProteinGoalGrams
}
