package service

import (
	"math"
	"time"

	"github.com/madDev-12/fitnutrition/internal/model"
)

const (
	DefaultCalories = 2200.0
	DefaultProtein  = 150.0
	DefaultCarbs    = 220.0
	DefaultFat      = 70.0

	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0

	splitProtein = 0.25
	splitCarbs   = 0.45
	splitFat     = 0.30

	minVisibleProgress = 5.0
)

type Targets struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

func DefaultTargets() Targets {
	return Targets{Calories: DefaultCalories, Protein: DefaultProtein, Carbs: DefaultCarbs, Fat: DefaultFat}
}

// NutritionTargets derives daily targets from a plan. Each macro uses the
// plan's explicit grams, then its percentage of calories, then the
// 25/45/30 split of calories.
func NutritionTargets(plan *model.MealPlan) Targets {
	if plan == nil {
		return DefaultTargets()
	}
	calories := plan.Calories()
	if calories <= 0 {
		calories = DefaultCalories
	}
	return Targets{
		Calories: calories,
		Protein: macroTarget(calories, kcalPerGramProtein, splitProtein,
			plan.ProteinPercentage, plan.DailyProtein, plan.Protein),
		Carbs: macroTarget(calories, kcalPerGramCarbs, splitCarbs,
			plan.CarbsPercentage, plan.DailyCarbs, plan.Carbs, plan.Carbohydrates),
		Fat: macroTarget(calories, kcalPerGramFat, splitFat,
			plan.FatsPercentage, plan.DailyFat, plan.Fat, plan.Fats),
	}
}

func macroTarget(calories, kcalPerGram, split float64, pct *model.Number, explicit ...*model.Number) float64 {
	for _, v := range explicit {
		if g := v.Float(); g > 0 {
			return g
		}
	}
	if p := pct.Float(); p > 0 {
		return calories * p / 100 / kcalPerGram
	}
	return calories * split / kcalPerGram
}

// TargetsForDate uses the plan active on date, or the defaults.
func TargetsForDate(date time.Time, plans []model.MealPlan) (Targets, *model.MealPlan) {
	plan, ok := ActivePlanFor(date, plans)
	if !ok {
		return DefaultTargets(), nil
	}
	return NutritionTargets(&plan), &plan
}

// ProgressPercent is the display percentage of actual against target,
// capped at 100 and never below 5 once anything was logged.
func ProgressPercent(actual, target float64) float64 {
	if target <= 0 || actual <= 0 {
		return 0
	}
	pct := math.Min(actual/target*100, 100)
	return math.Max(pct, minVisibleProgress)
}

// CalendarTarget picks the calorie target for a dashboard calendar day:
// active plan, then the selected plan, then TDEE, then the default.
func CalendarTarget(date time.Time, plans []model.MealPlan, selected *model.MealPlan, tdee float64) float64 {
	if plan, ok := ActivePlanFor(date, plans); ok && plan.Calories() > 0 {
		return plan.Calories()
	}
	if selected != nil && selected.Calories() > 0 {
		return selected.Calories()
	}
	if tdee > 0 {
		return math.Round(tdee)
	}
	return DefaultCalories
}
