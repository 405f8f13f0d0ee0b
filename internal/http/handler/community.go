package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pact/internal/activegroup"
	"pact/internal/auth"
	"pact/internal/board"
	"pact/internal/calendar"
	"pact/internal/group"
	"pact/internal/journal"
)

type CommunityHandler struct {
	Journal *journal.Service
	Groups  *group.Service
	Active  *activegroup.Store
}

// requireGroup resolves the group scope and checks membership. A zero
// return means the response was already written.
func (h *CommunityHandler) requireGroup(w http.ResponseWriter, r *http.Request, uid uint64) uint64 {
	groupID := groupScope(r, h.Active)
	if groupID == nil {
		http.Error(w, "no active group", http.StatusBadRequest)
		return 0
	}
	ok, err := h.Groups.IsMember(r.Context(), *groupID, uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return 0
	}
	if !ok {
		http.Error(w, "not a member", http.StatusForbidden)
		return 0
	}
	return *groupID
}

func windowParam(r *http.Request) int {
	switch strings.TrimSpace(r.URL.Query().Get("days")) {
	case "14":
		return 14
	case "30":
		return 30
	default:
		return 7
	}
}

// Leaderboard ranks the roster over the requested window. Gym attendance
// is always judged against the current week; protein hits span the
// whole window.
func (h *CommunityHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	groupID := h.requireGroup(w, r, uid)
	if groupID == 0 {
		return
	}

	windowDays := windowParam(r)
	today := calendar.Today()
	startDay := calendar.ShiftDays(today, -(windowDays - 1))
	weekStart := calendar.WeekStart(today)

	memberIDs, err := h.Groups.MemberIDs(r.Context(), groupID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	profiles, err := h.Groups.Profiles(r.Context(), memberIDs)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	members := make([]board.Member, 0, len(memberIDs))
	for _, id := range memberIDs {
		attendance, err := h.Groups.AttendanceDays(r.Context(), groupID, id, weekStart)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		m := board.Member{UserID: id, AttendanceDays: attendance}
		if p, ok := profiles[id]; ok {
			m.DisplayName = p.DisplayName
			m.WeeklyGymTarget = p.WeeklyGymTarget
		}
		members = append(members, m)
	}

	summaries, err := h.Journal.GroupSummariesInRange(r.Context(), groupID, startDay, today)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	byUser := make(map[uint64][]board.Summary)
	for _, s := range summaries {
		byUser[s.OwnerID] = append(byUser[s.OwnerID], board.Summary{Day: s.Day, Protein: s.Protein})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"window_days": windowDays,
		"rows":        board.Rank(members, byUser, windowDays),
	})
}

type feedItemDTO struct {
	group.GymCheckin
	DisplayName  string `json:"display_name"`
	WeekSessions int    `json:"week_sessions"`
	WeekTarget   int    `json:"week_target"`
}

// Feed lists the group's recent check-ins, each labeled with the
// member's progress for that check-in's week.
func (h *CommunityHandler) Feed(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	groupID := h.requireGroup(w, r, uid)
	if groupID == 0 {
		return
	}

	windowDays := windowParam(r)
	today := calendar.Today()
	startDay := calendar.ShiftDays(today, -(windowDays - 1))

	rows, err := h.Groups.CheckinsInRange(r.Context(), groupID, startDay, today, 100)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	userIDs := make([]uint64, 0, len(rows))
	seen := make(map[uint64]struct{})
	for _, c := range rows {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			userIDs = append(userIDs, c.UserID)
		}
	}
	profiles, err := h.Groups.Profiles(r.Context(), userIDs)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	type weekKey struct {
		userID    uint64
		weekStart string
	}
	sessions := make(map[weekKey]int)

	out := make([]feedItemDTO, 0, len(rows))
	for _, c := range rows {
		k := weekKey{c.UserID, c.WeekStart}
		if _, ok := sessions[k]; !ok {
			n, err := h.Groups.AttendanceDays(r.Context(), groupID, c.UserID, c.WeekStart)
			if err != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
				return
			}
			sessions[k] = n
		}

		item := feedItemDTO{GymCheckin: c, WeekSessions: sessions[k], WeekTarget: board.DefaultWeeklyGymTarget}
		if p, ok := profiles[c.UserID]; ok {
			item.DisplayName = p.DisplayName
			if p.WeeklyGymTarget > 0 {
				item.WeekTarget = p.WeeklyGymTarget
			}
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, out)
}

type checkinReq struct {
	Date     string  `json:"date"` // defaults to today
	Note     *string `json:"note"`
	PhotoURL *string `json:"photo_url"`
}

// CreateCheckin appends a gym check-in and marks the day's gym habit.
func (h *CommunityHandler) CreateCheckin(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	groupID := h.requireGroup(w, r, uid)
	if groupID == 0 {
		return
	}

	var req checkinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	day := strings.TrimSpace(req.Date)
	if day == "" {
		day = calendar.Today()
	} else if _, err := time.Parse(calendar.DayKeyLayout, day); err != nil {
		http.Error(w, "invalid date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	c, err := h.Groups.CreateCheckin(r.Context(), group.CheckinInput{
		GroupID:     groupID,
		UserID:      uid,
		CheckinDate: day,
		Note:        req.Note,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if _, err := h.Groups.UpsertActivity(r.Context(), group.ActivityInput{
		GroupID: groupID,
		UserID:  uid,
		Day:     day,
		GymDone: true,
	}); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

type activityReq struct {
	Day         string  `json:"day"` // defaults to today
	GymDone     bool    `json:"gym_done"`
	SleepDone   bool    `json:"sleep_done"`
	ProteinDone bool    `json:"protein_done"`
	ConfirmDone bool    `json:"confirm_done"`
	Note        *string `json:"note"`
	PhotoURL    *string `json:"photo_url"`
}

// UpsertActivity records the day's ritual flags; repeats merge into the
// existing row, never duplicate it.
func (h *CommunityHandler) UpsertActivity(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	groupID := h.requireGroup(w, r, uid)
	if groupID == 0 {
		return
	}

	var req activityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	day := strings.TrimSpace(req.Day)
	if day == "" {
		day = calendar.Today()
	} else if _, err := time.Parse(calendar.DayKeyLayout, day); err != nil {
		http.Error(w, "invalid day (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	row, err := h.Groups.UpsertActivity(r.Context(), group.ActivityInput{
		GroupID:     groupID,
		UserID:      uid,
		Day:         day,
		GymDone:     req.GymDone,
		SleepDone:   req.SleepDone,
		ProteinDone: req.ProteinDone,
		ConfirmDone: req.ConfirmDone,
		Note:        req.Note,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	// a gym flag with no check-in yet backfills the attendance feed, so
	// the leaderboard counts the session either way
	if req.GymDone {
		has, err := h.Groups.HasCheckinOn(r.Context(), groupID, uid, day)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		if !has {
			if _, err := h.Groups.CreateCheckin(r.Context(), group.CheckinInput{
				GroupID:     groupID,
				UserID:      uid,
				CheckinDate: day,
			}); err != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, row)
}

// Week lists one member's ritual rows for a week, mostly for the grid.
func (h *CommunityHandler) Week(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	groupID := h.requireGroup(w, r, uid)
	if groupID == 0 {
		return
	}

	day := dayParam(r)
	if day == "" {
		http.Error(w, "invalid day (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	weekStart := calendar.WeekStart(day)

	target := uid
	if v := strings.TrimSpace(r.URL.Query().Get("user")); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid user", http.StatusBadRequest)
			return
		}
		target = id
	}

	rows, err := h.Groups.WeekActivities(r.Context(), groupID, target, weekStart)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"week_start": weekStart,
		"rows":       rows,
	})
}
