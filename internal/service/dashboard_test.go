package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/madDev-12/fitnutrition/internal/api"
	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDashboardLoaderLoadsAllSections(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := NewMockDashboardSource(ctrl)
	ctx := context.Background()
	today := date(t, "2024-03-04")

	summary := model.Dashboard{Metabolism: &model.Metabolism{BMR: model.NewNumber(1700), TDEE: model.NewNumber(2500.6)}}
	plan := windowPlan(5, "march cut", "2024-03-03", "2024-03-05", 1800)

	src.EXPECT().Dashboard(ctx).Return(summary, nil)
	src.EXPECT().LatestMeasurement(ctx).Return(model.Measurement{ID: 8, Weight: model.NewNumber(79)}, true, nil)
	src.EXPECT().TodayMeals(ctx).Return([]model.Meal{{ID: 1, TotalCalories: 900}}, nil)
	src.EXPECT().ThisWeekWorkouts(ctx).Return([]model.Workout{{ID: 2, Status: model.WorkoutCompleted}}, nil)
	src.EXPECT().ListMealPlans(ctx).Return([]model.MealPlan{plan}, nil)
	src.EXPECT().ListMeals(ctx, api.MealQuery{StartDate: "2024-03-01", EndDate: "2024-03-07"}).Return([]model.Meal{
		{ID: 1, Date: "2024-03-04", TotalCalories: 900},
		{ID: 3, Date: "2024-03-01", TotalCalories: 3000},
	}, nil)
	src.EXPECT().ListWorkouts(ctx).Return([]model.Workout{
		{ID: 2, Date: "2024-03-04", TotalCaloriesBurned: 300, ProgressPercentage: 2},
		{ID: 4, Date: "2024-03-02", TotalCaloriesBurned: 200, ProgressPercentage: 60},
		{ID: 6, Date: "2024-03-02", TotalCaloriesBurned: 100, ProgressPercentage: 100},
	}, nil)

	view := service.NewDashboardLoader(src, nil).Load(ctx, today)
	require.NoError(t, view.Err)
	assert.Empty(t, view.Failed)
	require.NotNil(t, view.Latest)
	assert.Equal(t, int64(8), view.Latest.ID)
	assert.InDelta(t, 2500.6, view.TDEE(), 1e-9)
	assert.InDelta(t, 1800, view.TodayTargets(nil).Calories, 1e-9)

	intake := view.Intake
	require.Len(t, intake.Days, 7)
	assert.Equal(t, "2024-03-01", service.FormatDate(intake.Days[0].Date))
	assert.InDelta(t, 3000, intake.Days[0].Calories, 1e-9)
	assert.InDelta(t, 2501, intake.Days[0].Target, 1e-9, "outside the plan window the rounded TDEE applies")
	assert.InDelta(t, 100, intake.Days[0].Progress, 1e-9)
	assert.True(t, intake.Days[3].Today)
	assert.InDelta(t, 1800, intake.Days[3].Target, 1e-9)
	assert.InDelta(t, 50, intake.Days[3].Progress, 1e-9)
	assert.InDelta(t, 3900, intake.Total, 1e-9)
	assert.InDelta(t, 3900.0/7, intake.Average, 1e-9)

	burned := view.Burned
	assert.InDelta(t, 300, burned.Days[1].Calories, 1e-9)
	assert.InDelta(t, 80, burned.Days[1].Progress, 1e-9)
	assert.InDelta(t, 5, burned.Days[3].Progress, 1e-9, "progress floor once calories were burned")
	assert.InDelta(t, 0, burned.Days[4].Progress, 1e-9)
}

func TestDashboardLoaderIsolatesFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := NewMockDashboardSource(ctrl)
	ctx := context.Background()
	boom := errors.New("boom")

	src.EXPECT().Dashboard(ctx).Return(model.Dashboard{}, boom)
	src.EXPECT().LatestMeasurement(ctx).Return(model.Measurement{}, false, nil)
	src.EXPECT().TodayMeals(ctx).Return(nil, boom)
	src.EXPECT().ThisWeekWorkouts(ctx).Return(nil, boom).Times(2)
	src.EXPECT().ListMealPlans(ctx).Return(nil, nil)
	src.EXPECT().ListMeals(ctx, gomock.Any()).Return(nil, nil)
	src.EXPECT().ListWorkouts(ctx).Return(nil, boom)

	selected := windowPlan(9, "selected", "", "", 2100)
	view := service.NewDashboardLoader(src, &selected).Load(ctx, date(t, "2024-03-04"))

	assert.Equal(t, []string{service.SectionSummary, service.SectionTodayMeals, service.SectionWorkouts, service.SectionBurned}, view.Failed)
	assert.Equal(t, []string{service.SectionSummary}, view.Warnings())
	assert.ErrorIs(t, view.Err, boom)
	assert.Nil(t, view.Latest)
	assert.NotNil(t, view.TodayMeals)
	assert.NotNil(t, view.Plans)
	assert.InDelta(t, 0, view.TDEE(), 1e-9)
	assert.InDelta(t, 2100, view.Intake.Days[0].Target, 1e-9)
	assert.InDelta(t, 2100, view.TodayTargets(&selected).Calories, 1e-9)
	assert.Equal(t, service.DefaultTargets(), view.TodayTargets(nil))
}

func TestIntakeCalendarUsesDefaultTarget(t *testing.T) {
	t.Parallel()

	days := service.CenteredWeek(date(t, "2024-03-04"))
	cal := service.IntakeCalendar(days, date(t, "2024-03-04"), nil, nil, nil, 0)
	for _, d := range cal.Days {
		assert.InDelta(t, 2200, d.Target, 1e-9)
		assert.InDelta(t, 0, d.Progress, 1e-9)
	}
	assert.InDelta(t, 0, cal.Average, 1e-9)
}
