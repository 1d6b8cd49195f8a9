package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/madDev-12/fitnutrition/internal/model"
)

type MealQuery struct {
	Date      string
	StartDate string
	EndDate   string
}

func (q MealQuery) values() url.Values {
	v := url.Values{}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	return v
}

func (c *Client) ListMeals(ctx context.Context, q MealQuery) ([]model.Meal, error) {
	return listAll[model.Meal](ctx, c, "nutrition/meals/", q.values())
}

func (c *Client) TodayMeals(ctx context.Context) ([]model.Meal, error) {
	return listAll[model.Meal](ctx, c, "nutrition/meals/today/", nil)
}

func (c *Client) CreateMeal(ctx context.Context, in model.MealInput) (model.Meal, error) {
	var out model.Meal
	body, err := c.send(ctx, http.MethodPost, "nutrition/meals/", in)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode created meal: %w", err)
	}
	return out, nil
}

func (c *Client) DeleteMeal(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("nutrition/meals/%d/", id), nil)
	return err
}

func (c *Client) RemoveMealItem(ctx context.Context, mealID, itemID int64) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("nutrition/meals/%d/items/%d/", mealID, itemID), nil)
	return err
}

func (c *Client) SearchFoods(ctx context.Context, search string) ([]model.Food, error) {
	q := url.Values{}
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}
	return listAll[model.Food](ctx, c, "nutrition/foods/", q)
}

func (c *Client) GetFood(ctx context.Context, id int64) (model.Food, error) {
	var out model.Food
	body, err := c.get(ctx, fmt.Sprintf("nutrition/foods/%d/", id), nil)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode food %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateFood(ctx context.Context, in model.FoodInput) (model.Food, error) {
	return c.saveFood(ctx, http.MethodPost, "nutrition/foods/", in)
}

func (c *Client) UpdateFood(ctx context.Context, id int64, in model.FoodInput) (model.Food, error) {
	return c.saveFood(ctx, http.MethodPut, fmt.Sprintf("nutrition/foods/%d/", id), in)
}

func (c *Client) saveFood(ctx context.Context, method, path string, in model.FoodInput) (model.Food, error) {
	var out model.Food
	body, err := c.send(ctx, method, path, in)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode food: %w", err)
	}
	return out, nil
}

func (c *Client) DeleteFood(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("nutrition/foods/%d/", id), nil)
	return err
}

func (c *Client) ListFavorites(ctx context.Context) ([]model.Favorite, error) {
	return listAll[model.Favorite](ctx, c, "nutrition/favorites/", nil)
}

func (c *Client) ToggleFavorite(ctx context.Context, foodID int64) error {
	_, err := c.send(ctx, http.MethodPost, "nutrition/favorites/toggle/", map[string]int64{"food_id": foodID})
	return err
}

func (c *Client) ListMealPlans(ctx context.Context) ([]model.MealPlan, error) {
	return listAll[model.MealPlan](ctx, c, "nutrition/meal-plans/", nil)
}

func (c *Client) GetMealPlan(ctx context.Context, id int64) (model.MealPlan, error) {
	var out model.MealPlan
	body, err := c.get(ctx, fmt.Sprintf("nutrition/meal-plans/%d/", id), nil)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode meal plan %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateMealPlan(ctx context.Context, in model.MealPlanInput) (model.MealPlan, error) {
	var out model.MealPlan
	body, err := c.send(ctx, http.MethodPost, "nutrition/meal-plans/", in)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode created meal plan: %w", err)
	}
	return out, nil
}

// UpdateMealPlan sends the full plan; nil start/end dates clear the active window.
func (c *Client) UpdateMealPlan(ctx context.Context, plan model.MealPlan) (model.MealPlan, error) {
	var out model.MealPlan
	body, err := c.send(ctx, http.MethodPut, fmt.Sprintf("nutrition/meal-plans/%d/", plan.ID), plan)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return plan, nil
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode meal plan %d: %w", plan.ID, err)
	}
	return out, nil
}

func (c *Client) DeleteMealPlan(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("nutrition/meal-plans/%d/", id), nil)
	return err
}

func (c *Client) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return listAll[model.Recipe](ctx, c, "nutrition/recipes/", nil)
}

func (c *Client) GetRecipe(ctx context.Context, id int64) (model.Recipe, error) {
	var out model.Recipe
	body, err := c.get(ctx, fmt.Sprintf("nutrition/recipes/%d/", id), nil)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode recipe %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateRecipe(ctx context.Context, in model.RecipeInput) (model.Recipe, error) {
	return c.saveRecipe(ctx, http.MethodPost, "nutrition/recipes/", in)
}

// UpdateRecipe keeps the stored image unless in.ImagePath is set.
func (c *Client) UpdateRecipe(ctx context.Context, id int64, in model.RecipeInput) (model.Recipe, error) {
	return c.saveRecipe(ctx, http.MethodPatch, fmt.Sprintf("nutrition/recipes/%d/", id), in)
}

func (c *Client) DeleteRecipe(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("nutrition/recipes/%d/", id), nil)
	return err
}

func (c *Client) saveRecipe(ctx context.Context, method, path string, in model.RecipeInput) (model.Recipe, error) {
	var out model.Recipe
	payload, contentType, err := recipeForm(in)
	if err != nil {
		return out, err
	}
	body, err := c.mutate(ctx, method, c.endpoint(path, nil), payload, contentType)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode recipe: %w", err)
	}
	return out, nil
}

func recipeForm(in model.RecipeInput) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fields := []struct{ key, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"calories", formatFloat(in.Calories)},
		{"protein", formatFloat(in.Protein)},
		{"carbs", formatFloat(in.Carbs)},
		{"fats", formatFloat(in.Fats)},
		{"time", in.Time},
		{"servings", in.Servings},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", fmt.Errorf("write recipe field %s: %w", f.key, err)
		}
	}
	if in.ImagePath != "" {
		f, err := os.Open(in.ImagePath)
		if err != nil {
			return nil, "", fmt.Errorf("open recipe image: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("image", filepath.Base(in.ImagePath))
		if err != nil {
			return nil, "", fmt.Errorf("create recipe image part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("copy recipe image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close recipe form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
