package handler

import (
	"net/http"
	"sort"

	"pact/internal/activegroup"
	"pact/internal/auth"
	"pact/internal/calendar"
	"pact/internal/card"
	"pact/internal/group"
	"pact/internal/habits"
	"pact/internal/journal"
)

type TodayHandler struct {
	Journal *journal.Service
	Groups  *group.Service
	Active  *activegroup.Store
}

type habitGridDTO struct {
	WeekStart string          `json:"week_start"`
	Gym       [7]habits.State `json:"gym"`
	Sleep     [7]habits.State `json:"sleep"`
	Protein   [7]habits.State `json:"protein"`
	Confirm   [7]habits.State `json:"confirm"`
	Group     [7]habits.State `json:"group"`
}

// Dashboard assembles the day view: the bucket's macro summary, the
// week's habit grids, and the accountability card. Group sections are
// omitted when no group scope resolves.
func (h *TodayHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	day := dayParam(r)
	if day == "" {
		http.Error(w, "invalid day (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	weekStart := calendar.WeekStart(day)
	groupID := groupScope(r, h.Active)

	summary, err := h.Journal.SummaryForDay(r.Context(), uid, groupID, day)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := map[string]any{
		"day":          day,
		"summary":      summary,
		"protein_goal": habits.ProteinGoalGrams,
	}

	if groupID != nil {
		mine, err := h.Groups.WeekActivities(r.Context(), *groupID, uid, weekStart)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		all, err := h.Groups.WeekGroupActivities(r.Context(), *groupID, weekStart)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		memberIDs, err := h.Groups.MemberIDs(r.Context(), *groupID)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}

		dayOf := func(a group.Activity) string { return a.Day }
		grid := habitGridDTO{
			WeekStart: weekStart,
			Gym:       habits.States(mine, weekStart, dayOf, func(a group.Activity) bool { return a.GymDone }),
			Sleep:     habits.States(mine, weekStart, dayOf, func(a group.Activity) bool { return a.SleepDone }),
			Protein:   habits.States(mine, weekStart, dayOf, func(a group.Activity) bool { return a.ProteinDone }),
			Confirm:   habits.States(mine, weekStart, dayOf, func(a group.Activity) bool { return a.ConfirmDone }),
		}

		presences := make([]habits.Presence, 0, len(all))
		for _, a := range all {
			presences = append(presences, habits.Presence{Day: a.Day, UserID: a.UserID})
		}
		grid.Group = habits.GroupConsistency(presences, weekStart, len(memberIDs))

		gymDays, err := h.Groups.AttendanceDays(r.Context(), *groupID, uid, weekStart)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}

		counts := card.WeekCounts{GymDays: gymDays}
		for _, state := range grid.Sleep {
			if state == habits.StateComplete {
				counts.SleepDays++
			}
		}
		for _, state := range grid.Protein {
			if state == habits.StateComplete {
				counts.ProteinDays++
			}
		}

		out["group_id"] = *groupID
		out["habits"] = grid
		out["card"] = card.Evaluate(counts)
	}

	writeJSON(w, http.StatusOK, out)
}

// Week returns the bucket's daily summaries for the week containing the
// requested day, ordered Monday first; days without entries are absent.
func (h *TodayHandler) Week(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	day := dayParam(r)
	if day == "" {
		http.Error(w, "invalid day (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	weekStart := calendar.WeekStart(day)
	weekEnd := calendar.ShiftDays(weekStart, 6)
	groupID := groupScope(r, h.Active)

	rows, err := h.Journal.OwnerSummariesInRange(r.Context(), uid, groupID, weekStart, weekEnd)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })

	writeJSON(w, http.StatusOK, map[string]any{
		"week_start": weekStart,
		"summaries":  rows,
	})
}
