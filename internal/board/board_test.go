package board_test

import (
	"reflect"
	"testing"

	"pact/internal/board"
)

func TestRankScoreScenario(t *testing.T) {
	// target 3, 2 attendance days, 5 protein-hit days of 7:
	// round((2/3*0.55 + 5/7*0.45)*100) = 69
	members := []board.Member{
		{UserID: 1, DisplayName: "mo", WeeklyGymTarget: 3, AttendanceDays: 2},
	}
	summaries := map[uint64][]board.Summary{
		1: {
			{Day: "2024-01-08", Protein: 120},
			{Day: "2024-01-09", Protein: 101},
			{Day: "2024-01-10", Protein: 100},
			{Day: "2024-01-11", Protein: 99}, // miss
			{Day: "2024-01-12", Protein: 130},
			{Day: "2024-01-13", Protein: 108},
		},
	}

	rows := board.Rank(members, summaries, 7)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ProteinHitDays != 5 {
		t.Fatalf("expected 5 protein hit days, got %d", rows[0].ProteinHitDays)
	}
	if rows[0].Score != 69 {
		t.Fatalf("expected score 69, got %d", rows[0].Score)
	}
}

func TestRankGymRatioCapped(t *testing.T) {
	members := []board.Member{
		{UserID: 1, WeeklyGymTarget: 3, AttendanceDays: 6},
	}
	rows := board.Rank(members, nil, 7)
	// gym ratio capped at 1.0 -> 55 points from gym alone
	if rows[0].Score != 55 {
		t.Fatalf("expected capped score 55, got %d", rows[0].Score)
	}
}

func TestRankDefaultTarget(t *testing.T) {
	members := []board.Member{{UserID: 1, AttendanceDays: 3}}
	rows := board.Rank(members, nil, 7)
	if rows[0].GymTarget != board.DefaultWeeklyGymTarget {
		t.Fatalf("expected default target %d, got %d", board.DefaultWeeklyGymTarget, rows[0].GymTarget)
	}
}

func TestRankTieBreakByProteinTotal(t *testing.T) {
	members := []board.Member{
		{UserID: 1, DisplayName: "a", WeeklyGymTarget: 3, AttendanceDays: 3},
		{UserID: 2, DisplayName: "b", WeeklyGymTarget: 3, AttendanceDays: 3},
	}
	summaries := map[uint64][]board.Summary{
		1: {{Day: "2024-01-08", Protein: 110}},
		2: {{Day: "2024-01-08", Protein: 150}},
	}

	rows := board.Rank(members, summaries, 7)
	if rows[0].Score != rows[1].Score {
		t.Fatalf("expected equal scores, got %d and %d", rows[0].Score, rows[1].Score)
	}
	if rows[0].UserID != 2 {
		t.Fatalf("expected user 2 first on protein tie-break, got %d", rows[0].UserID)
	}
}

func TestRankDeterministic(t *testing.T) {
	members := []board.Member{
		{UserID: 3, WeeklyGymTarget: 4, AttendanceDays: 1},
		{UserID: 1, WeeklyGymTarget: 3, AttendanceDays: 2},
		{UserID: 2, WeeklyGymTarget: 3, AttendanceDays: 2},
	}
	summaries := map[uint64][]board.Summary{
		1: {{Day: "2024-01-08", Protein: 105}, {Day: "2024-01-09", Protein: 90}},
		2: {{Day: "2024-01-08", Protein: 105}, {Day: "2024-01-09", Protein: 95}},
		3: {{Day: "2024-01-08", Protein: 200}},
	}

	first := board.Rank(members, summaries, 14)
	second := board.Rank(members, summaries, 14)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ranking is not deterministic:\n%v\n%v", first, second)
	}
}

func TestRankEmptyRoster(t *testing.T) {
	rows := board.Rank(nil, nil, 7)
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
}
