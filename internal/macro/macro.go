package macro

import "math"

// Totals carries the four macro values, either as per-100g rates or as
// absolute amounts for a portion/day. Accumulation stays unrounded;
// rounding happens only at the persistence/display boundary.
type Totals struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Kcal:    t.Kcal + o.Kcal,
		Protein: t.Protein + o.Protein,
		Carbs:   t.Carbs + o.Carbs,
		Fat:     t.Fat + o.Fat,
	}
}

// Round2 returns the totals rounded to two decimals.
func (t Totals) Round2() Totals {
	return Totals{
		Kcal:    Round2(t.Kcal),
		Protein: Round2(t.Protein),
		Carbs:   Round2(t.Carbs),
		Fat:     Round2(t.Fat),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Scale converts per-100g rates into totals for the given gram amount.
func Scale(per100 Totals, grams float64) Totals {
	f := grams / 100
	return Totals{
		Kcal:    per100.Kcal * f,
		Protein: per100.Protein * f,
		Carbs:   per100.Carbs * f,
		Fat:     per100.Fat * f,
	}
}

// Portion is one meal component: an ingredient reference plus gram amount.
type Portion struct {
	IngredientID uint64
	Grams        float64
}

// MealTotals sums scaled macros over all portions. A portion whose
// ingredient is missing from the index contributes zero; a stale
// reference never fails the whole meal.
func MealTotals(portions []Portion, per100ByID map[uint64]Totals) Totals {
	var sum Totals
	for _, p := range portions {
		per100, ok := per100ByID[p.IngredientID]
		if !ok {
			continue
		}
		sum = sum.Add(Scale(per100, p.Grams))
	}
	return sum
}

// MealCost mirrors MealTotals for ingredient unit cost (cost per 100g).
// The result is unrounded; format with Round2 at the boundary.
func MealCost(portions []Portion, costPer100ByID map[uint64]float64) float64 {
	var sum float64
	for _, p := range portions {
		cost, ok := costPer100ByID[p.IngredientID]
		if !ok {
			continue
		}
		sum += cost * p.Grams / 100
	}
	return sum
}
