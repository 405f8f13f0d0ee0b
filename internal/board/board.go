package board

import (
	"math"
	"sort"

	"pact/internal/habits"
)

// Scoring policy. The weights and the protein goal (habits.ProteinGoalGrams)
// are fixed design parameters, not user-configurable.
const (
	GymWeight     = 0.55
	ProteinWeight = 0.45

	DefaultWeeklyGymTarget = 3
)

// Member is one roster entry with its precomputed weekly attendance.
type Member struct {
	UserID          uint64
	DisplayName     string
	WeeklyGymTarget int
	AttendanceDays  int
}

// Summary is one member-day protein aggregate inside the window.
type Summary struct {
	Day     string
	Protein float64
}

// Row is a ranked leaderboard entry.
type Row struct {
	UserID         uint64  `json:"user_id"`
	DisplayName    string  `json:"display_name"`
	GymSessions    int     `json:"gym_sessions"`
	GymTarget      int     `json:"gym_target"`
	ProteinHitDays int     `json:"protein_hit_days"`
	ProteinTotal   float64 `json:"protein_total"`
	Score          int     `json:"score"`
}

// Rank scores every member over a window of windowDays and returns rows
// sorted by score descending, ties broken by unrounded window protein
// sum descending. An empty roster yields an empty slice.
func Rank(members []Member, summariesByUser map[uint64][]Summary, windowDays int) []Row {
	rows := make([]Row, 0, len(members))
	for _, m := range members {
		target := m.WeeklyGymTarget
		if target <= 0 {
			target = DefaultWeeklyGymTarget
		}

		proteinByDay := make(map[string]float64)
		var proteinTotal float64
		for _, s := range summariesByUser[m.UserID] {
			proteinByDay[s.Day] += s.Protein
			proteinTotal += s.Protein
		}

		hitDays := 0
		for _, protein := range proteinByDay {
			if habits.ProteinHit(protein) {
				hitDays++
			}
		}

		gymRatio := math.Min(float64(m.AttendanceDays)/float64(target), 1)
		proteinRatio := 0.0
		if windowDays > 0 {
			proteinRatio = float64(hitDays) / float64(windowDays)
		}

		rows = append(rows, Row{
			UserID:         m.UserID,
			DisplayName:    m.DisplayName,
			GymSessions:    m.AttendanceDays,
			GymTarget:      target,
			ProteinHitDays: hitDays,
			ProteinTotal:   proteinTotal,
			Score:          int(math.Round((gymRatio*GymWeight + proteinRatio*ProteinWeight) * 100)),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].ProteinTotal > rows[j].ProteinTotal
	})
	return rows
}
