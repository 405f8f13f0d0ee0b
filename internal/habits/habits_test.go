package habits_test

import (
	"testing"

	"pact/internal/habits"
)

type activity struct {
	day     string
	gymDone bool
	userID  uint64
}

func TestBucketByDay(t *testing.T) {
	items := []activity{
		{day: "2024-01-08"},
		{day: "2024-01-08"},
		{day: "2024-01-09"},
	}
	buckets := habits.BucketByDay(items, func(a activity) string { return a.day })
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if len(buckets["2024-01-08"]) != 2 {
		t.Fatalf("expected 2 rows on 2024-01-08, got %d", len(buckets["2024-01-08"]))
	}
}

func TestStates(t *testing.T) {
	records := []activity{
		{day: "2024-01-08", gymDone: true},
		{day: "2024-01-09", gymDone: false},
		// duplicate rows for one day OR-merge into a single state
		{day: "2024-01-10", gymDone: false},
		{day: "2024-01-10", gymDone: true},
	}

	states := habits.States(records, "2024-01-08",
		func(a activity) string { return a.day },
		func(a activity) bool { return a.gymDone },
	)

	want := [7]habits.State{
		habits.StateComplete,
		habits.StateMissed,
		habits.StateComplete,
		habits.StateEmpty,
		habits.StateEmpty,
		habits.StateEmpty,
		habits.StateEmpty,
	}
	if states != want {
		t.Fatalf("expected %v, got %v", want, states)
	}
}

func TestStatesNoRecords(t *testing.T) {
	states := habits.States(nil, "2024-01-08",
		func(a activity) string { return a.day },
		func(a activity) bool { return a.gymDone },
	)
	for i, s := range states {
		if s != habits.StateEmpty {
			t.Fatalf("day %d: expected empty, got %s", i, s)
		}
	}
}

func TestGroupConsistency(t *testing.T) {
	presences := []habits.Presence{
		// Monday: 2 of 3 members active -> 0.66 >= 0.6 -> complete
		{Day: "2024-01-08", UserID: 1},
		{Day: "2024-01-08", UserID: 2},
		// duplicate presence for the same member must not inflate the ratio
		{Day: "2024-01-08", UserID: 2},
		// Tuesday: 1 of 3 -> missed
		{Day: "2024-01-09", UserID: 1},
	}

	states := habits.GroupConsistency(presences, "2024-01-08", 3)
	if states[0] != habits.StateComplete {
		t.Fatalf("Monday: expected complete, got %s", states[0])
	}
	if states[1] != habits.StateMissed {
		t.Fatalf("Tuesday: expected missed, got %s", states[1])
	}
	if states[2] != habits.StateEmpty {
		t.Fatalf("Wednesday: expected empty, got %s", states[2])
	}
}

func TestGroupConsistencyEmptyRoster(t *testing.T) {
	states := habits.GroupConsistency(nil, "2024-01-08", 0)
	for i, s := range states {
		if s != habits.StateEmpty {
			t.Fatalf("day %d: expected empty, got %s", i, s)
		}
	}
}

func TestUniqueDays(t *testing.T) {
	days := []string{"2024-01-08", "2024-01-08", "2024-01-08", "2024-01-10"}
	if got := habits.UniqueDays(days); got != 2 {
		t.Fatalf("expected 2 unique days, got %d", got)
	}
	if got := habits.UniqueDays(nil); got != 0 {
		t.Fatalf("expected 0 for no days, got %d", got)
	}
}

func TestProteinHit(t *testing.T) {
	if !habits.ProteinHit(100) {
		t.Fatalf("100g must count as a hit")
	}
	if habits.ProteinHit(99.99) {
		t.Fatalf("99.99g must not count as a hit")
	}
}
