package macro_test

import (
	"math"
	"testing"

	"pact/internal/macro"
)

const eps = 1e-9

func almostEqual(a, b macro.Totals) bool {
	return math.Abs(a.Kcal-b.Kcal) < eps &&
		math.Abs(a.Protein-b.Protein) < eps &&
		math.Abs(a.Carbs-b.Carbs) < eps &&
		math.Abs(a.Fat-b.Fat) < eps
}

func TestScaleChickenBreast(t *testing.T) {
	per100 := macro.Totals{Kcal: 165, Protein: 31, Carbs: 0, Fat: 3.6}
	got := macro.Scale(per100, 150)
	want := macro.Totals{Kcal: 247.5, Protein: 46.5, Carbs: 0, Fat: 5.4}
	if !almostEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestScaleLinearity(t *testing.T) {
	per100 := macro.Totals{Kcal: 123.4, Protein: 8.7, Carbs: 45.6, Fat: 2.3}
	cases := []struct{ g1, g2 float64 }{
		{0, 0},
		{50, 50},
		{37.5, 112.5},
		{1, 999},
	}
	for _, c := range cases {
		whole := macro.Scale(per100, c.g1+c.g2)
		parts := macro.Scale(per100, c.g1).Add(macro.Scale(per100, c.g2))
		if !almostEqual(whole, parts) {
			t.Fatalf("scale(%v+%v) = %+v, sum of parts = %+v", c.g1, c.g2, whole, parts)
		}
	}
}

func TestMealTotalsSkipsMissingIngredient(t *testing.T) {
	index := map[uint64]macro.Totals{
		1: {Kcal: 100, Protein: 10, Carbs: 5, Fat: 1},
	}
	portions := []macro.Portion{
		{IngredientID: 1, Grams: 200},
		{IngredientID: 99, Grams: 500}, // deleted ingredient
	}
	got := macro.MealTotals(portions, index)
	want := macro.Totals{Kcal: 200, Protein: 20, Carbs: 10, Fat: 2}
	if !almostEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMealTotalsEmpty(t *testing.T) {
	if got := macro.MealTotals(nil, nil); got != (macro.Totals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestMealCost(t *testing.T) {
	costs := map[uint64]float64{1: 1.99, 2: 0.45}
	portions := []macro.Portion{
		{IngredientID: 1, Grams: 150},
		{IngredientID: 2, Grams: 300},
		{IngredientID: 3, Grams: 80}, // no cost data
	}
	got := macro.MealCost(portions, costs)
	want := 1.99*1.5 + 0.45*3
	if math.Abs(got-want) > eps {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRound2(t *testing.T) {
	if got := macro.Round2(46.4999); got != 46.5 {
		t.Fatalf("expected 46.5, got %v", got)
	}
	totals := macro.Totals{Kcal: 247.499, Protein: 46.506, Carbs: 0, Fat: 5.4}
	rounded := totals.Round2()
	if rounded.Kcal != 247.5 || rounded.Protein != 46.51 {
		t.Fatalf("unexpected rounding: %+v", rounded)
	}
}
