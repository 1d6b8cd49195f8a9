package service

import (
	"strings"
	"time"

	"github.com/madDev-12/fitnutrition/internal/model"
)

type Totals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fats:     t.Fats + o.Fats,
	}
}

func ItemTotals(items []model.MealItem) Totals {
	var t Totals
	for _, it := range items {
		t.Calories += float64(it.Calories)
		t.Protein += float64(it.Protein)
		t.Carbs += float64(it.Carbs)
		t.Fats += float64(it.Fats)
	}
	return t
}

func MealTotals(m model.Meal) Totals {
	return Totals{
		Calories: float64(m.TotalCalories),
		Protein:  float64(m.TotalProtein),
		Carbs:    float64(m.TotalCarbs),
		Fats:     float64(m.TotalFats),
	}
}

func DayTotals(meals []model.Meal) Totals {
	var t Totals
	for _, m := range meals {
		t = t.Add(MealTotals(m))
	}
	return t
}

// MealsOn keeps meals whose date falls on day. Dates may carry a time part.
func MealsOn(meals []model.Meal, day time.Time) []model.Meal {
	key := FormatDate(day)
	out := []model.Meal{}
	for _, m := range meals {
		if strings.HasPrefix(m.Date, key) {
			out = append(out, m)
		}
	}
	return out
}

// GroupByMealType buckets meals under the fixed breakfast..snack order.
func GroupByMealType(meals []model.Meal) map[string][]model.Meal {
	out := make(map[string][]model.Meal, len(model.MealTypes))
	for _, t := range model.MealTypes {
		out[t] = []model.Meal{}
	}
	for _, m := range meals {
		out[m.MealType] = append(out[m.MealType], m)
	}
	return out
}
