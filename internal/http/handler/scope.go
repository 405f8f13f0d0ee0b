package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pact/internal/activegroup"
	"pact/internal/calendar"
	"pact/internal/journal"
)

// groupScope resolves the group context for a request: an explicit
// ?group= parameter wins, otherwise the process's active-group slot.
// No group at all means the private bucket.
func groupScope(r *http.Request, active *activegroup.Store) *uint64 {
	if v := strings.TrimSpace(r.URL.Query().Get("group")); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil && id > 0 {
			return &id
		}
	}
	if active != nil {
		if id, ok := active.GroupID(); ok {
			return &id
		}
	}
	return nil
}

// dayParam reads an optional ?day= key, defaulting to today. The empty
// string signals an unparseable value.
func dayParam(r *http.Request) string {
	d := strings.TrimSpace(r.URL.Query().Get("day"))
	if d == "" {
		return calendar.Today()
	}
	if _, err := time.Parse(calendar.DayKeyLayout, d); err != nil {
		return ""
	}
	return d
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJournalError maps a classified write rejection onto a status code
// and the category's user-facing message.
func writeJournalError(w http.ResponseWriter, err error) {
	cat := journal.ClassifyWriteError(err)
	status := http.StatusInternalServerError
	switch cat {
	case journal.WriteErrMissingGroup:
		status = http.StatusBadRequest
	case journal.WriteErrDuplicate:
		status = http.StatusConflict
	case journal.WriteErrBadReference:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]any{
		"error":   string(cat),
		"message": cat.Message(),
	})
}
