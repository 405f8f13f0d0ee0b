package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pact/internal/activegroup"
	"pact/internal/auth"
	"pact/internal/calendar"
	"pact/internal/food"
	"pact/internal/group"
	"pact/internal/habits"
	"pact/internal/journal"

	"github.com/go-chi/chi/v5"
)

type EntryHandler struct {
	Journal *journal.Service
	Food    *food.Service
	Groups  *group.Service
	Active  *activegroup.Store
}

type createEntryReq struct {
	Day       string  `json:"day"` // defaults to today
	EntryType string  `json:"entry_type"`
	RefID     uint64  `json:"ref_id"`
	Quantity  float64 `json:"quantity"`
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.EntryType = strings.TrimSpace(strings.ToLower(req.EntryType))
	if req.EntryType != food.KindIngredient && req.EntryType != food.KindMeal {
		http.Error(w, "invalid entry_type", http.StatusBadRequest)
		return
	}
	if req.RefID == 0 || req.Quantity <= 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	day := strings.TrimSpace(req.Day)
	if day == "" {
		day = calendar.Today()
	} else if _, err := time.Parse(calendar.DayKeyLayout, day); err != nil {
		http.Error(w, "invalid day (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	// 1) freeze the snapshot from the current library state
	totals, err := h.Food.QuickItemTotals(r.Context(), uid, req.EntryType, req.RefID, req.Quantity)
	if err != nil {
		if err == food.ErrInvalidItem {
			http.Error(w, "invalid entry_type", http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	groupID := groupScope(r, h.Active)

	// 2) append the entry and refresh the bucket summary
	entry, summary, err := h.Journal.CreateEntry(r.Context(), journal.CreateEntryInput{
		OwnerID:   uid,
		GroupID:   groupID,
		Day:       day,
		EntryType: req.EntryType,
		RefID:     req.RefID,
		Quantity:  req.Quantity,
		Totals:    totals,
	})
	if err != nil {
		writeJournalError(w, err)
		return
	}

	// 3) ritual side-effect, after the write committed: crossing the
	// protein goal marks the day's habit in the active group
	if groupID != nil && habits.ProteinHit(summary.Protein) {
		if err := h.Groups.EnsureProteinDone(r.Context(), *groupID, uid, day); err != nil {
			log.Printf("protein ritual mark failed: user=%d group=%d day=%s err=%v", uid, *groupID, day, err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"entry":   entry,
		"summary": summary,
	})
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	switch err := h.Journal.DeleteEntry(r.Context(), uid, id64); err {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case journal.ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

// List returns the bucket's entries and summary for one day.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	day := dayParam(r)
	if day == "" {
		http.Error(w, "invalid day (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	groupID := groupScope(r, h.Active)

	entries, err := h.Journal.EntriesForDay(r.Context(), uid, groupID, day)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	summary, err := h.Journal.SummaryForDay(r.Context(), uid, groupID, day)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"day":     day,
		"entries": entries,
		"summary": summary,
	})
}
