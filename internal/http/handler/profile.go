package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pact/internal/auth"
	"pact/internal/calendar"
	"pact/internal/group"

	"gorm.io/gorm"
)

type ProfileHandler struct {
	Groups *group.Service
	DB     *gorm.DB
}

// Me returns the caller's id and profile. A missing profile row comes
// back as null rather than an error.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var p group.Profile
	err := h.DB.Where("user_id = ?", uid).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{"user_id": uid, "profile": nil})
		return
	}
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": uid, "profile": p})
}

type profileReq struct {
	DisplayName     string  `json:"display_name"`
	Bio             string  `json:"bio"`
	AvatarURL       *string `json:"avatar_url"`
	HeightCm        float64 `json:"height_cm"`
	CurrentWeightKg float64 `json:"current_weight_kg"`
	TargetWeightKg  float64 `json:"target_weight_kg"`
	WeeklyGymTarget int     `json:"weekly_gym_target"`
	ActivityLevel   string  `json:"activity_level"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req profileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		http.Error(w, "display_name required", http.StatusBadRequest)
		return
	}
	if req.WeeklyGymTarget < 0 || req.WeeklyGymTarget > 7 {
		http.Error(w, "weekly_gym_target must be 0..7", http.StatusBadRequest)
		return
	}
	switch req.ActivityLevel {
	case "", "low", "moderate", "high":
	default:
		http.Error(w, "invalid activity_level", http.StatusBadRequest)
		return
	}
	if req.ActivityLevel == "" {
		req.ActivityLevel = "moderate"
	}

	p, err := h.Groups.UpsertProfile(r.Context(), uid, group.ProfileInput{
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		AvatarURL:       req.AvatarURL,
		HeightCm:        req.HeightCm,
		CurrentWeightKg: req.CurrentWeightKg,
		TargetWeightKg:  req.TargetWeightKg,
		WeeklyGymTarget: req.WeeklyGymTarget,
		ActivityLevel:   req.ActivityLevel,
	})
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type weightReq struct {
	LoggedOn string  `json:"logged_on"` // defaults to today
	WeightKg float64 `json:"weight_kg"`
	Note     *string `json:"note"`
}

// LogWeight upserts the day's weight sample and rolls the profile's
// current weight forward.
func (h *ProfileHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req weightReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.WeightKg <= 0 {
		http.Error(w, "weight_kg required", http.StatusBadRequest)
		return
	}
	day := strings.TrimSpace(req.LoggedOn)
	if day == "" {
		day = calendar.Today()
	} else if _, err := time.Parse(calendar.DayKeyLayout, day); err != nil {
		http.Error(w, "invalid logged_on (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	if err := h.Groups.UpsertWeight(r.Context(), uid, day, req.WeightKg, req.Note); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) Weights(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	limit := 30
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	rows, err := h.Groups.RecentWeights(r.Context(), uid, limit)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
