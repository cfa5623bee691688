package catalog

import (
	"testing"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutrition(t *testing.T) {
	p := domain.Product{
		ID: "onion",
		NutritionalInfo: domain.NutritionalInfo{
			Calories: 340,
			Protein:  10,
			Carbs:    75,
			Fiber:    15,
			Vitamins: []string{"Vitamin C"},
		},
	}

	facts, err := Nutrition(p, 2, "ounces")
	require.NoError(t, err)

	assert.InDelta(t, 56.7, facts.Grams, 0.0001)
	require.Len(t, facts.Nutrients, 4)
	assert.Equal(t, Nutrient{"Calories", 192.8, "kcal", 10}, facts.Nutrients[0])
	assert.Equal(t, Nutrient{"Protein", 5.7, "g", 11}, facts.Nutrients[1])
	assert.Equal(t, Nutrient{"Carbohydrates", 42.5, "g", 14}, facts.Nutrients[2])
	assert.Equal(t, Nutrient{"Fiber", 8.5, "g", 34}, facts.Nutrients[3])
	assert.Equal(t, []string{"Vitamin C"}, facts.Vitamins)
}

func TestNutrition_Grams(t *testing.T) {
	p := domain.Product{NutritionalInfo: domain.NutritionalInfo{Calories: 40, Protein: 1.1}}

	facts, err := Nutrition(p, 100, "grams")
	require.NoError(t, err)
	assert.Equal(t, 40.0, facts.Nutrients[0].Value)
	assert.Equal(t, 1.1, facts.Nutrients[1].Value)
	assert.Equal(t, 2, facts.Nutrients[0].DailyValuePct)
}

func TestNutrition_Errors(t *testing.T) {
	_, err := Nutrition(domain.Product{}, 1, "bushels")
	assert.Error(t, err)

	_, err = Nutrition(domain.Product{}, 0, "grams")
	assert.Error(t, err)
}
