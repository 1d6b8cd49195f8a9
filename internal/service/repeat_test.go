package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	mu     sync.Mutex
	nextID int64
	failOn string
	seen   []string
}

func (f *fakeCreator) CreateMeal(_ context.Context, in model.MealInput) (model.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Date == f.failOn {
		return model.Meal{}, errors.New("backend down")
	}
	f.nextID++
	f.seen = append(f.seen, in.Date)
	return model.Meal{ID: f.nextID, Name: in.Name, Date: in.Date, MealType: in.MealType}, nil
}

func oneItem() []model.MealItemInput {
	return []model.MealItemInput{{FoodID: 3, ServingSize: 150}}
}

func TestMealLogRequestValidate(t *testing.T) {
	t.Parallel()

	today := date(t, "2024-05-10")
	valid := service.MealLogRequest{MealType: model.MealTypeLunch, Date: today, Items: oneItem()}
	require.NoError(t, valid.Validate(today))

	for name, mutate := range map[string]func(*service.MealLogRequest){
		"no items":     func(r *service.MealLogRequest) { r.Items = nil },
		"bad type":     func(r *service.MealLogRequest) { r.MealType = "brunch" },
		"past date":    func(r *service.MealLogRequest) { r.Date = date(t, "2024-05-09") },
		"zero serving": func(r *service.MealLogRequest) { r.Items = []model.MealItemInput{{FoodID: 3}} },
		"no until":     func(r *service.MealLogRequest) { r.Repeat = service.RepeatDaily },
		"until before": func(r *service.MealLogRequest) {
			r.Repeat = service.RepeatDaily
			r.RepeatUntil = date(t, "2024-05-01")
		},
		"weekly without days": func(r *service.MealLogRequest) {
			r.Repeat = service.RepeatWeekly
			r.RepeatUntil = date(t, "2024-05-20")
		},
		"weekly day never hit": func(r *service.MealLogRequest) {
			r.Repeat = service.RepeatWeekly
			r.RepeatUntil = date(t, "2024-05-11")
			r.WeeklyDays = []time.Weekday{time.Monday}
		},
	} {
		req := valid
		mutate(&req)
		assert.Error(t, req.Validate(today), name)
	}
}

func TestMealLogRequestDates(t *testing.T) {
	t.Parallel()

	start := date(t, "2024-05-10")
	daily := service.MealLogRequest{Date: start, Repeat: service.RepeatDaily, RepeatUntil: date(t, "2024-05-13")}
	assert.Equal(t, []string{"2024-05-10", "2024-05-11", "2024-05-12", "2024-05-13"}, formatAll(daily.Dates()))

	weekly := service.MealLogRequest{
		Date: start, Repeat: service.RepeatWeekly, RepeatUntil: date(t, "2024-05-24"),
		WeeklyDays: []time.Weekday{time.Monday, time.Friday},
	}
	assert.Equal(t, []string{"2024-05-10", "2024-05-13", "2024-05-17", "2024-05-20", "2024-05-24"}, formatAll(weekly.Dates()))

	single := service.MealLogRequest{Date: start, MealType: model.MealTypeSnack, Items: oneItem()}
	inputs := single.Inputs()
	require.Len(t, inputs, 1)
	assert.Equal(t, "snack - 2024-05-10", inputs[0].Name)
	assert.Equal(t, "2024-05-10", inputs[0].Date)
}

func TestLogMealsKeepsDateOrder(t *testing.T) {
	t.Parallel()

	req := service.MealLogRequest{
		MealType: model.MealTypeBreakfast, Date: date(t, "2024-05-10"), Items: oneItem(),
		Repeat: service.RepeatDaily, RepeatUntil: date(t, "2024-05-19"),
	}
	creator := &fakeCreator{}
	meals, err := service.LogMeals(context.Background(), creator, req.Inputs())
	require.NoError(t, err)
	require.Len(t, meals, 10)
	for i, m := range meals {
		assert.Equal(t, service.FormatDate(date(t, "2024-05-10").AddDate(0, 0, i)), m.Date)
	}
	assert.Len(t, creator.seen, 10)
}

func TestLogMealsReportsFailure(t *testing.T) {
	t.Parallel()

	req := service.MealLogRequest{
		MealType: model.MealTypeBreakfast, Date: date(t, "2024-05-10"), Items: oneItem(),
		Repeat: service.RepeatDaily, RepeatUntil: date(t, "2024-05-12"),
	}
	_, err := service.LogMeals(context.Background(), &fakeCreator{failOn: "2024-05-11"}, req.Inputs())
	assert.ErrorContains(t, err, "create meal for 2024-05-11")
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	days, err := service.ParseWeekdays([]string{"Mon", "wednesday", "0", "mon", ""})
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Sunday}, days)
	_, err = service.ParseWeekdays([]string{"someday"})
	assert.Error(t, err)

	kind, err := service.ParseRepeatKind(" Weekly ")
	require.NoError(t, err)
	assert.Equal(t, service.RepeatWeekly, kind)
	kind, err = service.ParseRepeatKind("")
	require.NoError(t, err)
	assert.Equal(t, service.RepeatNone, kind)
	_, err = service.ParseRepeatKind("monthly")
	assert.Error(t, err)

	mealType, err := service.ParseMealType(" Dinner")
	require.NoError(t, err)
	assert.Equal(t, model.MealTypeDinner, mealType)
	_, err = service.ParseMealType("elevenses")
	assert.Error(t, err)
}
