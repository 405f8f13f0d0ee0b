package food

import (
	"time"

	"pact/internal/macro"
)

// Ingredient holds per-100g macro rates plus optional shopping data.
type Ingredient struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	OwnerID uint64 `gorm:"index;not null" json:"owner_id"`
	Name    string `gorm:"not null" json:"name"`

	KcalPer100    float64 `gorm:"column:kcal_per_100;not null;default:0" json:"kcal_per_100"`
	ProteinPer100 float64 `gorm:"column:protein_per_100;not null;default:0" json:"protein_per_100"`
	CarbsPer100   float64 `gorm:"column:carbs_per_100;not null;default:0" json:"carbs_per_100"`
	FatPer100     float64 `gorm:"column:fat_per_100;not null;default:0" json:"fat_per_100"`

	CostPer100 *float64 `gorm:"column:cost_per_100" json:"cost_per_100"`
	MarketName *string  `json:"market_name"`
	Brand      *string  `json:"brand"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// Per100 returns the ingredient's macro rates as a totals value.
func (i Ingredient) Per100() macro.Totals {
	return macro.Totals{
		Kcal:    i.KcalPer100,
		Protein: i.ProteinPer100,
		Carbs:   i.CarbsPer100,
		Fat:     i.FatPer100,
	}
}

// Meal is a named container; its macro totals are always derived from
// the current ingredient rates, never stored.
type Meal struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	OwnerID   uint64    `gorm:"index;not null" json:"owner_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// MealItem is one ingredient portion inside a meal.
type MealItem struct {
	MealID       uint64  `gorm:"primaryKey" json:"meal_id"`
	IngredientID uint64  `gorm:"primaryKey" json:"ingredient_id"`
	Grams        float64 `gorm:"not null" json:"grams"`
}
