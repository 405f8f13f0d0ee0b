package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"pact/internal/activegroup"
	"pact/internal/auth"
	"pact/internal/group"
)

type GroupHandler struct {
	Groups *group.Service
	Active *activegroup.Store
}

type createGroupReq struct {
	Name string `json:"name"`
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createGroupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	g, err := h.Groups.Create(r.Context(), uid, req.Name)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

type joinGroupReq struct {
	GroupID uint64 `json:"group_id"`
}

func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req joinGroupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.GroupID == 0 {
		http.Error(w, "group_id required", http.StatusBadRequest)
		return
	}

	g, err := h.Groups.Join(r.Context(), uid, req.GroupID)
	switch err {
	case nil:
		writeJSON(w, http.StatusOK, g)
	case group.ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	case group.ErrAlreadyMember:
		http.Error(w, "already a member", http.StatusConflict)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	groups, err := h.Groups.ListForUser(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// GetActive reports the persisted active-group selection, or null.
func (h *GroupHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	g, ok := h.Active.Get()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"group": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"group": g})
}

type setActiveReq struct {
	GroupID uint64 `json:"group_id"`
}

// SetActive points the active-group slot at one of the caller's groups.
func (h *GroupHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req setActiveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.GroupID == 0 {
		http.Error(w, "group_id required", http.StatusBadRequest)
		return
	}

	ok, err := h.Groups.IsMember(r.Context(), req.GroupID, uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "not a member", http.StatusForbidden)
		return
	}

	groups, err := h.Groups.ListForUser(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	var target *group.Group
	for i := range groups {
		if groups[i].ID == req.GroupID {
			target = &groups[i]
			break
		}
	}
	if target == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if err := h.Active.Set(*target); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"group": target})
}

func (h *GroupHandler) ClearActive(w http.ResponseWriter, r *http.Request) {
	if err := h.Active.Clear(); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
