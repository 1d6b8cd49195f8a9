package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberAcceptsStringsAndNumbers(t *testing.T) {
	t.Parallel()

	var got struct {
		A Number  `json:"a"`
		B Number  `json:"b"`
		C *Number `json:"c"`
		D Number  `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 70.5, "b": "18.25", "c": null, "d": ""}`), &got))
	assert.Equal(t, 70.5, float64(got.A))
	assert.Equal(t, 18.25, float64(got.B))
	assert.Equal(t, 0.0, got.C.Float())
	assert.Equal(t, 0.0, float64(got.D))

	var bad Number
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestMealTotalFatAlias(t *testing.T) {
	t.Parallel()

	var m Meal
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "meal_type": "lunch", "total_calories": "450", "total_fat": 12.5}`), &m))
	assert.Equal(t, int64(3), m.ID)
	assert.Equal(t, 450.0, float64(m.TotalCalories))
	assert.Equal(t, 12.5, float64(m.TotalFats))
	assert.NotNil(t, m.Items)
}

func TestRecipeNumericTimeAndServings(t *testing.T) {
	t.Parallel()

	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "name": "Oats", "time": 15, "servings": "2", "image": null}`), &r))
	assert.Equal(t, "15", r.Time)
	assert.Equal(t, "2", r.Servings)
	assert.Empty(t, r.Image)
}

func TestMealPlanCaloriesFallback(t *testing.T) {
	t.Parallel()

	p := MealPlan{TargetCalories: NewNumber(1800)}
	assert.Equal(t, 1800.0, p.Calories())
	p.DailyCalories = NewNumber(2000)
	assert.Equal(t, 2000.0, p.Calories())

	start := "2024-03-01"
	p.StartDate = &start
	assert.False(t, p.HasWindow())
	end := "2024-03-07"
	p.EndDate = &end
	assert.True(t, p.HasWindow())
}
