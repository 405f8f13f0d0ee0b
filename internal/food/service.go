package food

import (
	"context"
	"errors"

	"pact/internal/macro"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrInvalidItem = errors.New("invalid meal item")

// Quick-add entry kinds. Ingredients and meals share list surfaces but
// scale differently; the kind is the discriminant.
const (
	KindIngredient = "ingredient"
	KindMeal       = "meal"
)

type Service struct {
	DB *gorm.DB
}

type IngredientInput struct {
	Name          string
	KcalPer100    float64
	ProteinPer100 float64
	CarbsPer100   float64
	FatPer100     float64
	CostPer100    *float64
	MarketName    *string
	Brand         *string
}

func (s *Service) CreateIngredient(ctx context.Context, ownerID uint64, in IngredientInput) (uint64, error) {
	ing := Ingredient{
		OwnerID:       ownerID,
		Name:          in.Name,
		KcalPer100:    in.KcalPer100,
		ProteinPer100: in.ProteinPer100,
		CarbsPer100:   in.CarbsPer100,
		FatPer100:     in.FatPer100,
		CostPer100:    in.CostPer100,
		MarketName:    in.MarketName,
		Brand:         in.Brand,
	}
	if err := s.DB.WithContext(ctx).Create(&ing).Error; err != nil {
		return 0, err
	}
	return ing.ID, nil
}

func (s *Service) UpdateIngredient(ctx context.Context, ownerID, id uint64, in IngredientInput) error {
	res := s.DB.WithContext(ctx).Model(&Ingredient{}).
		Where("id=? AND owner_id=?", id, ownerID).
		Updates(map[string]any{
			"name":            in.Name,
			"kcal_per_100":    in.KcalPer100,
			"protein_per_100": in.ProteinPer100,
			"carbs_per_100":   in.CarbsPer100,
			"fat_per_100":     in.FatPer100,
			"cost_per_100":    in.CostPer100,
			"market_name":     in.MarketName,
			"brand":           in.Brand,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteIngredient(ctx context.Context, ownerID, id uint64) error {
	// meal items referencing the ingredient stay; meal totals degrade to
	// a best-effort sum over the remaining resolvable items
	res := s.DB.WithContext(ctx).Where("id=? AND owner_id=?", id, ownerID).Delete(&Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type MealItemInput struct {
	IngredientID uint64
	Grams        float64
}

// SaveMeal creates or updates a meal and replaces its item set wholesale.
func (s *Service) SaveMeal(ctx context.Context, ownerID uint64, mealID uint64, name string, items []MealItemInput) (uint64, error) {
	for _, it := range items {
		if it.IngredientID == 0 || it.Grams <= 0 {
			return 0, ErrInvalidItem
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mealID == 0 {
			m := Meal{OwnerID: ownerID, Name: name}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			mealID = m.ID
		} else {
			res := tx.Model(&Meal{}).
				Where("id=? AND owner_id=?", mealID, ownerID).
				Update("name", name)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}

		if err := tx.Where("meal_id=?", mealID).Delete(&MealItem{}).Error; err != nil {
			return err
		}
		for _, it := range items {
			row := MealItem{MealID: mealID, IngredientID: it.IngredientID, Grams: it.Grams}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return mealID, nil
}

func (s *Service) DeleteMeal(ctx context.Context, ownerID, id uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id=? AND owner_id=?", id, ownerID).Delete(&Meal{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("meal_id=?", id).Delete(&MealItem{}).Error
	})
}

// Per100Index loads an owner's ingredient rates keyed by id.
func (s *Service) Per100Index(ctx context.Context, ownerID uint64) (map[uint64]macro.Totals, error) {
	var rows []Ingredient
	if err := s.DB.WithContext(ctx).Where("owner_id=?", ownerID).Find(&rows).Error; err != nil {
		return nil, err
	}
	index := make(map[uint64]macro.Totals, len(rows))
	for _, ing := range rows {
		index[ing.ID] = ing.Per100()
	}
	return index, nil
}

// MealTotals recomputes a meal's macros from current ingredient rates.
// Items whose ingredient was deleted contribute zero.
func (s *Service) MealTotals(ctx context.Context, ownerID, mealID uint64) (macro.Totals, error) {
	index, err := s.Per100Index(ctx, ownerID)
	if err != nil {
		return macro.Totals{}, err
	}

	var items []MealItem
	if err := s.DB.WithContext(ctx).Where("meal_id=?", mealID).Find(&items).Error; err != nil {
		return macro.Totals{}, err
	}

	portions := make([]macro.Portion, 0, len(items))
	for _, it := range items {
		portions = append(portions, macro.Portion{IngredientID: it.IngredientID, Grams: it.Grams})
	}
	return macro.MealTotals(portions, index), nil
}

// MealCosts derives every meal's estimated cost for an owner, rounded to
// two decimals at this display boundary.
func (s *Service) MealCosts(ctx context.Context, ownerID uint64) (map[uint64]float64, error) {
	var ingredients []Ingredient
	if err := s.DB.WithContext(ctx).Where("owner_id=?", ownerID).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	costIndex := make(map[uint64]float64, len(ingredients))
	for _, ing := range ingredients {
		if ing.CostPer100 != nil {
			costIndex[ing.ID] = *ing.CostPer100
		}
	}

	var meals []Meal
	if err := s.DB.WithContext(ctx).Where("owner_id=?", ownerID).Find(&meals).Error; err != nil {
		return nil, err
	}
	costs := make(map[uint64]float64, len(meals))
	if len(meals) == 0 {
		return costs, nil
	}

	mealIDs := make([]uint64, 0, len(meals))
	for _, m := range meals {
		costs[m.ID] = 0
		mealIDs = append(mealIDs, m.ID)
	}

	var items []MealItem
	if err := s.DB.WithContext(ctx).Where("meal_id IN ?", mealIDs).Find(&items).Error; err != nil {
		return nil, err
	}

	byMeal := make(map[uint64][]macro.Portion)
	for _, it := range items {
		byMeal[it.MealID] = append(byMeal[it.MealID], macro.Portion{IngredientID: it.IngredientID, Grams: it.Grams})
	}
	for mealID, portions := range byMeal {
		costs[mealID] = macro.Round2(macro.MealCost(portions, costIndex))
	}
	return costs, nil
}

// QuickItemTotals resolves the frozen snapshot for a new log entry at
// write time. Ingredients scale by grams; meals scale their derived
// per-portion totals by the portion count. A missing reference yields
// zero totals, never an error.
func (s *Service) QuickItemTotals(ctx context.Context, ownerID uint64, kind string, refID uint64, quantity float64) (macro.Totals, error) {
	switch kind {
	case KindIngredient:
		var ing Ingredient
		err := s.DB.WithContext(ctx).Where("id=? AND owner_id=?", refID, ownerID).First(&ing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return macro.Totals{}, nil
		}
		if err != nil {
			return macro.Totals{}, err
		}
		return macro.Scale(ing.Per100(), quantity), nil

	case KindMeal:
		perPortion, err := s.MealTotals(ctx, ownerID, refID)
		if err != nil {
			return macro.Totals{}, err
		}
		return macro.Totals{
			Kcal:    perPortion.Kcal * quantity,
			Protein: perPortion.Protein * quantity,
			Carbs:   perPortion.Carbs * quantity,
			Fat:     perPortion.Fat * quantity,
		}, nil

	default:
		return macro.Totals{}, ErrInvalidItem
	}
}
