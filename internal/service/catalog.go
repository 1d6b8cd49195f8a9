package service

import (
	"fmt"
	"strings"

	"github.com/madDev-12/fitnutrition/internal/model"
)

func FilterRecipes(recipes []model.Recipe, term string) []model.Recipe {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return recipes
	}
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Name), term) || strings.Contains(strings.ToLower(r.Description), term) {
			out = append(out, r)
		}
	}
	return out
}

// OnlyFavoriteRecipes keeps recipes whose id is in favorites, in list order.
func OnlyFavoriteRecipes(recipes []model.Recipe, favorites []int64) []model.Recipe {
	want := make(map[int64]bool, len(favorites))
	for _, id := range favorites {
		want[id] = true
	}
	out := make([]model.Recipe, 0, len(favorites))
	for _, r := range recipes {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// EnsureCustomFood rejects edits to catalog foods.
func EnsureCustomFood(f model.Food) error {
	if !f.IsCustom {
		return fmt.Errorf("food %d (%s) is a catalog food and cannot be changed", f.ID, f.Name)
	}
	return nil
}

func ValidateFoodInput(in model.FoodInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("food name is required")
	}
	for name, v := range map[string]float64{
		"calories": in.Calories, "protein": in.Protein, "carbohydrates": in.Carbohydrates, "fats": in.Fats,
	} {
		if err := validateNonNegativeFloat(name, v); err != nil {
			return err
		}
	}
	if in.ServingSize <= 0 {
		return fmt.Errorf("serving size must be > 0")
	}
	return nil
}

func ValidateRecipeInput(in model.RecipeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("recipe name is required")
	}
	if strings.TrimSpace(in.Time) == "" || strings.TrimSpace(in.Servings) == "" {
		return fmt.Errorf("recipe time and servings are required")
	}
	for name, v := range map[string]float64{
		"calories": in.Calories, "protein": in.Protein, "carbs": in.Carbs, "fats": in.Fats,
	} {
		if err := validateNonNegativeFloat(name, v); err != nil {
			return err
		}
	}
	return nil
}

func ValidatePlanInput(in model.MealPlanInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("plan name is required")
	}
	if in.TargetCalories != nil {
		if err := validateNonNegativeFloat("target calories", *in.TargetCalories); err != nil {
			return err
		}
	}
	if in.DurationDays < 0 {
		return fmt.Errorf("duration days must be >= 0")
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
