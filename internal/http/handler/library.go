package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pact/internal/auth"
	"pact/internal/food"
	"pact/internal/macro"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type LibraryHandler struct {
	Svc *food.Service
	DB  *gorm.DB
}

type ingredientReq struct {
	Name          string   `json:"name"`
	KcalPer100    float64  `json:"kcal_per_100"`
	ProteinPer100 float64  `json:"protein_per_100"`
	CarbsPer100   float64  `json:"carbs_per_100"`
	FatPer100     float64  `json:"fat_per_100"`
	CostPer100    *float64 `json:"cost_per_100"`
	MarketName    *string  `json:"market_name"`
	Brand         *string  `json:"brand"`
}

func (req *ingredientReq) validate() bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return false
	}
	if req.KcalPer100 < 0 || req.ProteinPer100 < 0 || req.CarbsPer100 < 0 || req.FatPer100 < 0 {
		return false
	}
	return true
}

func (req *ingredientReq) input() food.IngredientInput {
	return food.IngredientInput{
		Name:          req.Name,
		KcalPer100:    req.KcalPer100,
		ProteinPer100: req.ProteinPer100,
		CarbsPer100:   req.CarbsPer100,
		FatPer100:     req.FatPer100,
		CostPer100:    req.CostPer100,
		MarketName:    req.MarketName,
		Brand:         req.Brand,
	}
}

func (h *LibraryHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	qText := strings.TrimSpace(r.URL.Query().Get("q"))

	q := h.DB.Model(&food.Ingredient{}).Where("owner_id = ?", uid)
	if qText != "" {
		q = q.Where("name ILIKE ?", "%"+qText+"%")
	}

	var rows []food.Ingredient
	if err := q.Order("name asc").Find(&rows).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *LibraryHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req ingredientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if !req.validate() {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	id, err := h.Svc.CreateIngredient(r.Context(), uid, req.input())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *LibraryHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req ingredientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if !req.validate() {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	switch err := h.Svc.UpdateIngredient(r.Context(), uid, id64, req.input()); err {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case food.ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func (h *LibraryHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	switch err := h.Svc.DeleteIngredient(r.Context(), uid, id64); err {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case food.ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

type mealItemReq struct {
	IngredientID uint64  `json:"ingredient_id"`
	Grams        float64 `json:"grams"`
}

type mealReq struct {
	Name  string        `json:"name"`
	Items []mealItemReq `json:"items"`
}

type mealDTO struct {
	ID     uint64          `json:"id"`
	Name   string          `json:"name"`
	Items  []food.MealItem `json:"items"`
	Totals macro.Totals    `json:"totals"`
	Cost   float64         `json:"cost"`
}

// ListMeals returns the owner's meals with their totals and costs derived
// from the current ingredient rates.
func (h *LibraryHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var meals []food.Meal
	if err := h.DB.Where("owner_id = ?", uid).Order("name asc").Find(&meals).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	costs, err := h.Svc.MealCosts(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]mealDTO, 0, len(meals))
	for _, m := range meals {
		totals, err := h.Svc.MealTotals(r.Context(), uid, m.ID)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}

		var items []food.MealItem
		if err := h.DB.Where("meal_id = ?", m.ID).Find(&items).Error; err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}

		out = append(out, mealDTO{
			ID:     m.ID,
			Name:   m.Name,
			Items:  items,
			Totals: totals.Round2(),
			Cost:   costs[m.ID],
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *LibraryHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	h.saveMeal(w, r, 0)
}

func (h *LibraryHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	h.saveMeal(w, r, id64)
}

func (h *LibraryHandler) saveMeal(w http.ResponseWriter, r *http.Request, mealID uint64) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req mealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Items) == 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	items := make([]food.MealItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, food.MealItemInput{IngredientID: it.IngredientID, Grams: it.Grams})
	}

	id, err := h.Svc.SaveMeal(r.Context(), uid, mealID, req.Name, items)
	switch err {
	case nil:
	case food.ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
		return
	case food.ErrInvalidItem:
		http.Error(w, "invalid meal item", http.StatusBadRequest)
		return
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if mealID == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{"id": id})
}

func (h *LibraryHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	switch err := h.Svc.DeleteMeal(r.Context(), uid, id64); err {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case food.ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
