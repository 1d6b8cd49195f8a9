package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/madDev-12/fitnutrition/internal/api"
	"github.com/madDev-12/fitnutrition/internal/model"
)

// MealAction is a local patch over loaded meals.
type MealAction interface {
	apply(meals []model.Meal) []model.Meal
	send(ctx context.Context, backend MealBackend) error
}

type MealBackend interface {
	ListMeals(ctx context.Context, q api.MealQuery) ([]model.Meal, error)
	DeleteMeal(ctx context.Context, id int64) error
	RemoveMealItem(ctx context.Context, mealID, itemID int64) error
}

type DeleteMeal struct {
	MealID int64
}

func (a DeleteMeal) apply(meals []model.Meal) []model.Meal {
	out := make([]model.Meal, 0, len(meals))
	for _, m := range meals {
		if m.ID != a.MealID {
			out = append(out, m)
		}
	}
	return out
}

func (a DeleteMeal) send(ctx context.Context, backend MealBackend) error {
	return backend.DeleteMeal(ctx, a.MealID)
}

// DeleteMealItem removes one item and recomputes the meal's totals from the
// items that remain.
type DeleteMealItem struct {
	MealID int64
	ItemID int64
}

func (a DeleteMealItem) apply(meals []model.Meal) []model.Meal {
	out := make([]model.Meal, len(meals))
	for i, m := range meals {
		if m.ID != a.MealID {
			out[i] = m
			continue
		}
		items := make([]model.MealItem, 0, len(m.Items))
		for _, it := range m.Items {
			if it.ID != a.ItemID {
				items = append(items, it)
			}
		}
		t := ItemTotals(items)
		m.Items = items
		m.TotalCalories = model.Number(t.Calories)
		m.TotalProtein = model.Number(t.Protein)
		m.TotalCarbs = model.Number(t.Carbs)
		m.TotalFats = model.Number(t.Fats)
		out[i] = m
	}
	return out
}

func (a DeleteMealItem) send(ctx context.Context, backend MealBackend) error {
	return backend.RemoveMealItem(ctx, a.MealID, a.ItemID)
}

// MealBook holds the loaded meals plus any local patches not yet replaced by
// server state.
type MealBook struct {
	query   api.MealQuery
	meals   []model.Meal
	pending []MealAction
}

func NewMealBook(query api.MealQuery, meals []model.Meal) *MealBook {
	return &MealBook{query: query, meals: meals}
}

func (b *MealBook) Meals() []model.Meal {
	out := make([]model.Meal, len(b.meals))
	copy(out, b.meals)
	return out
}

func (b *MealBook) Pending() int {
	return len(b.pending)
}

// Apply patches local state without contacting the backend.
func (b *MealBook) Apply(action MealAction) {
	b.meals = action.apply(b.meals)
	b.pending = append(b.pending, action)
}

// Reconcile replaces local state with server truth and drops pending patches.
func (b *MealBook) Reconcile(server []model.Meal) {
	b.meals = server
	b.pending = nil
}

// Dispatch applies the patch locally, sends it, then reloads. The reload
// runs even when the send fails so a rejected patch is reverted; when the
// reload fails too, the book returns to its state before the patch.
func (b *MealBook) Dispatch(ctx context.Context, backend MealBackend, action MealAction) error {
	meals, pending := b.meals, b.pending
	b.Apply(action)
	sendErr := action.send(ctx, backend)
	if sendErr != nil {
		log.Warnf("meal change rejected, reverting: %s", sendErr)
	}
	server, loadErr := backend.ListMeals(ctx, b.query)
	if loadErr != nil {
		if sendErr != nil {
			b.meals, b.pending = meals, pending
		}
		return multierr.Combine(sendErr, fmt.Errorf("reload meals: %w", loadErr))
	}
	b.Reconcile(server)
	return sendErr
}
