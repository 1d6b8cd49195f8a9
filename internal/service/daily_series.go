package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/madDev-12/fitnutrition/internal/model"
)

const defaultProgressDays = 7

var ProgressHeaders = []string{"Date", "Weight", "Weight change", "Body fat", "Body fat change", "Exercise types", "Intake kcal", "Burned kcal"}

// ProgressRow is one day of the progress report. Nil fields have no data.
type ProgressRow struct {
	Date          time.Time
	Weight        *float64
	WeightChange  *float64
	BodyFat       *float64
	BodyFatChange *float64
	ExerciseTypes string
	Intake        float64
	Burned        float64
}

func (r ProgressRow) Cells() []string {
	return []string{
		FormatDate(r.Date),
		optionalCell(r.Weight, "%.1f kg"),
		optionalCell(r.WeightChange, "%.2f kg"),
		optionalCell(r.BodyFat, "%.1f %%"),
		optionalCell(r.BodyFatChange, "%.1f %%"),
		r.ExerciseTypes,
		numberCell(r.Intake),
		numberCell(r.Burned),
	}
}

func optionalCell(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}

func numberCell(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func DefaultProgressRange(today time.Time) (time.Time, time.Time) {
	end := Day(today)
	return end.AddDate(0, 0, -defaultProgressDays), end
}

func ValidateProgressRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}
	if Day(start).After(Day(end)) {
		return fmt.Errorf("%w: start date must not be after end date", ErrInvalidRange)
	}
	return nil
}

// DailyProgressRows expands the report into one row per day of
// [start, end]. Changes compare against the previous calendar day only.
func DailyProgressRows(report model.ProgressReport, start, end time.Time) []ProgressRow {
	weights := map[string]float64{}
	for _, p := range report.WeightHistory {
		weights[dateKey(p.Date)] = float64(p.Weight)
	}
	bodyFat := map[string]float64{}
	for _, p := range report.BodyFatHistory {
		bodyFat[dateKey(p.Date)] = float64(p.BodyFatPercentage)
	}
	calories := map[string]model.CalorieTrend{}
	for _, c := range report.CalorieTrends {
		calories[dateKey(c.Date)] = c
	}
	names := make([]string, 0, len(report.ExerciseTypes))
	for _, ex := range report.ExerciseTypes {
		names = append(names, ex.Name)
	}
	exerciseTypes := strings.Join(names, ", ")

	var rows []ProgressRow
	for _, d := range DaysBetween(start, end) {
		key := FormatDate(d)
		prev := FormatDate(d.AddDate(0, 0, -1))
		row := ProgressRow{Date: d, ExerciseTypes: exerciseTypes}
		row.Weight, row.WeightChange = seriesPoint(weights, key, prev)
		row.BodyFat, row.BodyFatChange = seriesPoint(bodyFat, key, prev)
		if c, ok := calories[key]; ok {
			row.Intake = float64(c.Intake)
			row.Burned = float64(c.Burned)
		}
		rows = append(rows, row)
	}
	return rows
}

func seriesPoint(series map[string]float64, key, prev string) (*float64, *float64) {
	cur, ok := series[key]
	if !ok || cur == 0 {
		return nil, nil
	}
	value := cur
	before, ok := series[prev]
	if !ok || before == 0 || cur == before {
		return &value, nil
	}
	change := cur - before
	return &value, &change
}

func dateKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(DateLayout) {
		return raw[:len(DateLayout)]
	}
	return raw
}

type GoalCard struct {
	Name      string
	Unit      string
	Current   float64
	Target    float64
	Progress  float64
	Remaining float64
	HasTarget bool
}

func goalCard(name, unit string, current, target *model.Number) GoalCard {
	c := GoalCard{Name: name, Unit: unit, Current: current.Float(), Target: target.Float()}
	c.HasTarget = c.Target > 0
	if c.HasTarget {
		c.Progress = c.Current / c.Target * 100
	}
	c.Remaining = c.Target - c.Current
	return c
}

func GoalCards(report model.ProgressReport) []GoalCard {
	return []GoalCard{
		goalCard("Weight", "kg", report.CurrentWeight, report.WeightGoal),
		goalCard("Body fat", "%", report.CurrentBodyFat, report.BodyFatGoal),
		goalCard("Weekly workouts", "sessions", report.TotalWorkouts, report.WorkoutGoal),
	}
}

// ProgressFileName is the export base name for a range, without extension.
func ProgressFileName(start, end time.Time) string {
	return fmt.Sprintf("progress_report_%s_to_%s", FormatDate(start), FormatDate(end))
}
