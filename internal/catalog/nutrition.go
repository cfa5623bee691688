package catalog

import (
	"fmt"
	"math"

	"github.com/hardik88t/puredry/internal/domain"
)

// Grams per serving unit. Cups and tablespoons are approximations for
// dehydrated vegetables.
var servingUnits = map[string]float64{
	"grams":       1,
	"ounces":      28.35,
	"pounds":      453.59,
	"cups":        120,
	"tablespoons": 7.5,
}

var dailyValues = struct {
	calories, protein, carbs, fiber float64
}{2000, 50, 300, 25}

type Nutrient struct {
	Label         string  `json:"label"`
	Value         float64 `json:"value"`
	Unit          string  `json:"unit"`
	DailyValuePct int     `json:"daily_value_pct"`
}

type NutritionFacts struct {
	ProductID string     `json:"product_id"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Grams     float64    `json:"grams"`
	Nutrients []Nutrient `json:"nutrients"`
	Vitamins  []string   `json:"vitamins"`
}

// Nutrition scales the per-100g values of p to quantity of unit.
func Nutrition(p domain.Product, quantity float64, unit string) (NutritionFacts, error) {
	factor, ok := servingUnits[unit]
	if !ok {
		return NutritionFacts{}, fmt.Errorf("unknown serving unit %q", unit)
	}
	if quantity <= 0 {
		return NutritionFacts{}, fmt.Errorf("quantity must be positive, got %v", quantity)
	}

	grams := quantity * factor
	scale := func(per100g float64) float64 {
		return math.Round(per100g*grams/100*10) / 10
	}
	pct := func(v, dv float64) int {
		return int(math.Round(v / dv * 100))
	}

	info := p.NutritionalInfo
	calories := scale(info.Calories)
	protein := scale(info.Protein)
	carbs := scale(info.Carbs)
	fiber := scale(info.Fiber)

	return NutritionFacts{
		ProductID: p.ID,
		Quantity:  quantity,
		Unit:      unit,
		Grams:     grams,
		Nutrients: []Nutrient{
			{"Calories", calories, "kcal", pct(calories, dailyValues.calories)},
			{"Protein", protein, "g", pct(protein, dailyValues.protein)},
			{"Carbohydrates", carbs, "g", pct(carbs, dailyValues.carbs)},
			{"Fiber", fiber, "g", pct(fiber, dailyValues.fiber)},
		},
		Vitamins: info.Vitamins,
	}, nil
}
