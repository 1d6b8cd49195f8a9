package service_test

import (
	"errors"
	"testing"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyProgressRows(t *testing.T) {
	t.Parallel()

	report := model.ProgressReport{
		WeightHistory: []model.WeightPoint{
			{Date: "2024-03-01", Weight: 80},
			{Date: "2024-03-02T07:00:00Z", Weight: 79.5},
			{Date: "2024-03-04", Weight: 79},
		},
		BodyFatHistory: []model.BodyFatPoint{
			{Date: "2024-03-01", BodyFatPercentage: 20},
			{Date: "2024-03-02", BodyFatPercentage: 20},
		},
		CalorieTrends: []model.CalorieTrend{{Date: "2024-03-02", Intake: 2100, Burned: 450}},
		ExerciseTypes: []model.ExerciseType{{Name: "Running", Count: 2}, {Name: "Yoga", Count: 1}},
	}

	rows := service.DailyProgressRows(report, date(t, "2024-03-01"), date(t, "2024-03-04"))
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"2024-03-01", "80.0 kg", "", "20.0 %", "", "Running, Yoga", "", ""}, rows[0].Cells())
	assert.Equal(t, []string{"2024-03-02", "79.5 kg", "-0.50 kg", "20.0 %", "", "Running, Yoga", "2100", "450"}, rows[1].Cells())
	assert.Nil(t, rows[2].Weight)
	require.NotNil(t, rows[3].Weight)
	assert.Nil(t, rows[3].WeightChange, "no entry on the previous calendar day")
	assert.Len(t, rows[0].Cells(), len(service.ProgressHeaders))
}

func TestProgressRange(t *testing.T) {
	t.Parallel()

	start, end := service.DefaultProgressRange(date(t, "2024-03-10"))
	assert.Equal(t, "2024-03-03", service.FormatDate(start))
	assert.Equal(t, "2024-03-10", service.FormatDate(end))

	require.NoError(t, service.ValidateProgressRange(start, end))
	require.NoError(t, service.ValidateProgressRange(end, end))
	err := service.ValidateProgressRange(end, start)
	assert.True(t, errors.Is(err, service.ErrInvalidRange))

	assert.Equal(t, "progress_report_2024-03-03_to_2024-03-10", service.ProgressFileName(start, end))
}

func TestGoalCards(t *testing.T) {
	t.Parallel()

	cards := service.GoalCards(model.ProgressReport{
		CurrentWeight: model.NewNumber(78),
		WeightGoal:    model.NewNumber(75),
		TotalWorkouts: model.NewNumber(2),
		WorkoutGoal:   model.NewNumber(4),
	})
	require.Len(t, cards, 3)
	assert.True(t, cards[0].HasTarget)
	assert.InDelta(t, -3, cards[0].Remaining, 1e-9)
	assert.False(t, cards[1].HasTarget)
	assert.InDelta(t, 0, cards[1].Progress, 1e-9)
	assert.InDelta(t, 50, cards[2].Progress, 1e-9)
}
