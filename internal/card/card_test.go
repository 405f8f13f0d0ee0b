package card_test

import (
	"testing"

	"pact/internal/card"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name   string
		counts card.WeekCounts
		want   card.Status
	}{
		{"all met", card.WeekCounts{GymDays: 3, SleepDays: 5, ProteinDays: 7}, card.StatusNone},
		{"over-achieved", card.WeekCounts{GymDays: 6, SleepDays: 7, ProteinDays: 7}, card.StatusNone},
		{"two met", card.WeekCounts{GymDays: 3, SleepDays: 5, ProteinDays: 6}, card.StatusYellow},
		{"gym and protein", card.WeekCounts{GymDays: 4, SleepDays: 4, ProteinDays: 7}, card.StatusYellow},
		{"one met", card.WeekCounts{GymDays: 3, SleepDays: 0, ProteinDays: 0}, card.StatusRed},
		{"none met", card.WeekCounts{}, card.StatusRed},
		{"just below thresholds", card.WeekCounts{GymDays: 2, SleepDays: 4, ProteinDays: 6}, card.StatusRed},
	}

	for _, c := range cases {
		if got := card.Evaluate(c.counts); got != c.want {
			t.Fatalf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}
