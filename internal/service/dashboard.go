package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/madDev-12/fitnutrition/internal/api"
	"github.com/madDev-12/fitnutrition/internal/model"
)

type DashboardSource interface {
	Dashboard(ctx context.Context) (model.Dashboard, error)
	LatestMeasurement(ctx context.Context) (model.Measurement, bool, error)
	TodayMeals(ctx context.Context) ([]model.Meal, error)
	ThisWeekWorkouts(ctx context.Context) ([]model.Workout, error)
	ListMealPlans(ctx context.Context) ([]model.MealPlan, error)
	ListMeals(ctx context.Context, q api.MealQuery) ([]model.Meal, error)
	ListWorkouts(ctx context.Context) ([]model.Workout, error)
}

const (
	SectionSummary     = "summary"
	SectionMeasurement = "measurement"
	SectionTodayMeals  = "today meals"
	SectionWorkouts    = "workouts"
	SectionPlans       = "meal plans"
	SectionIntake      = "intake calendar"
	SectionBurned      = "burned calendar"
)

// bannerSections are reported to the user; the rest degrade to zero values.
var bannerSections = map[string]bool{SectionSummary: true, SectionMeasurement: true}

type CalendarDay struct {
	Date     time.Time
	Calories float64
	Target   float64
	Progress float64
	Today    bool
}

type Calendar struct {
	Days    []CalendarDay
	Total   float64
	Average float64
}

type DashboardView struct {
	Today        time.Time
	Summary      model.Dashboard
	Latest       *model.Measurement
	TodayMeals   []model.Meal
	WeekWorkouts []model.Workout
	Plans        []model.MealPlan
	Intake       Calendar
	Burned       Calendar
	// Failed lists the sections that could not be loaded, in load order.
	Failed []string
	Err    error
}

// Warnings are the failed sections worth surfacing in a banner.
func (v DashboardView) Warnings() []string {
	var out []string
	for _, s := range v.Failed {
		if bannerSections[s] {
			out = append(out, s)
		}
	}
	return out
}

func (v DashboardView) TodayTargets(selected *model.MealPlan) Targets {
	if plan, ok := ActivePlanFor(v.Today, v.Plans); ok {
		return NutritionTargets(&plan)
	}
	if selected != nil {
		return NutritionTargets(selected)
	}
	return DefaultTargets()
}

func (v DashboardView) TDEE() float64 {
	if v.Summary.Metabolism == nil {
		return 0
	}
	return v.Summary.Metabolism.TDEE.Float()
}

type DashboardLoader struct {
	Source DashboardSource
	// Selected is the locally selected meal plan, if any.
	Selected *model.MealPlan
}

func NewDashboardLoader(src DashboardSource, selected *model.MealPlan) *DashboardLoader {
	return &DashboardLoader{Source: src, Selected: selected}
}

// Load fetches every section concurrently. A failing section never cancels
// its siblings; it is recorded in Failed and left at its zero value.
func (l *DashboardLoader) Load(ctx context.Context, today time.Time) DashboardView {
	today = Day(today)
	week := CenteredWeek(today)
	view := DashboardView{Today: today}

	var (
		mu       sync.Mutex
		errs     error
		failed   = map[string]bool{}
		weekMeal []model.Meal
		allWork  []model.Workout
	)
	record := func(section string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed[section] = true
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", section, err))
	}

	var g errgroup.Group
	g.Go(func() error {
		d, err := l.Source.Dashboard(ctx)
		if err != nil {
			record(SectionSummary, err)
			return nil
		}
		view.Summary = d
		return nil
	})
	g.Go(func() error {
		m, ok, err := l.Source.LatestMeasurement(ctx)
		if err != nil {
			record(SectionMeasurement, err)
			return nil
		}
		if ok {
			view.Latest = &m
		}
		return nil
	})
	g.Go(func() error {
		meals, err := l.Source.TodayMeals(ctx)
		if err != nil {
			record(SectionTodayMeals, err)
			return nil
		}
		view.TodayMeals = meals
		return nil
	})
	g.Go(func() error {
		workouts, err := l.Source.ThisWeekWorkouts(ctx)
		if err != nil {
			record(SectionWorkouts, err)
			return nil
		}
		view.WeekWorkouts = workouts
		return nil
	})
	g.Go(func() error {
		plans, err := l.Source.ListMealPlans(ctx)
		if err != nil {
			record(SectionPlans, err)
			return nil
		}
		view.Plans = plans
		return nil
	})
	g.Go(func() error {
		meals, err := l.Source.ListMeals(ctx, api.MealQuery{
			StartDate: FormatDate(week[0]),
			EndDate:   FormatDate(week[len(week)-1]),
		})
		if err != nil {
			record(SectionIntake, err)
			return nil
		}
		weekMeal = meals
		return nil
	})
	g.Go(func() error {
		workouts, err := l.Source.ListWorkouts(ctx)
		if err == nil {
			allWork = workouts
			return nil
		}
		log.Debugf("list workouts failed, falling back to this week: %s", err)
		workouts, err = l.Source.ThisWeekWorkouts(ctx)
		if err != nil {
			record(SectionBurned, err)
			return nil
		}
		allWork = workouts
		return nil
	})
	_ = g.Wait()

	for _, s := range []string{SectionSummary, SectionMeasurement, SectionTodayMeals, SectionWorkouts, SectionPlans, SectionIntake, SectionBurned} {
		if failed[s] {
			view.Failed = append(view.Failed, s)
		}
	}
	view.Err = errs
	if view.TodayMeals == nil {
		view.TodayMeals = []model.Meal{}
	}
	if view.WeekWorkouts == nil {
		view.WeekWorkouts = []model.Workout{}
	}
	if view.Plans == nil {
		view.Plans = []model.MealPlan{}
	}
	view.Intake = IntakeCalendar(week, today, weekMeal, view.Plans, l.Selected, view.TDEE())
	view.Burned = BurnedCalendar(week, today, allWork)
	return view
}

// IntakeCalendar sums meal calories per day against each day's target.
func IntakeCalendar(days []time.Time, today time.Time, meals []model.Meal, plans []model.MealPlan, selected *model.MealPlan, tdee float64) Calendar {
	cal := Calendar{Days: make([]CalendarDay, 0, len(days))}
	for _, d := range days {
		calories := DayTotals(MealsOn(meals, d)).Calories
		target := CalendarTarget(d, plans, selected, tdee)
		cal.Days = append(cal.Days, CalendarDay{
			Date:     d,
			Calories: calories,
			Target:   target,
			Progress: math.Round(ProgressPercent(calories, target)),
			Today:    d.Equal(Day(today)),
		})
		cal.Total += calories
	}
	cal.Average = average(cal.Total, len(days))
	return cal
}

// BurnedCalendar sums burned calories per day; progress is the mean of the
// day's workout progress percentages.
func BurnedCalendar(days []time.Time, today time.Time, workouts []model.Workout) Calendar {
	cal := Calendar{Days: make([]CalendarDay, 0, len(days))}
	for _, d := range days {
		key := FormatDate(d)
		var calories, progress float64
		n := 0
		for _, w := range workouts {
			if w.Date == "" || !strings.HasPrefix(w.Date, key) {
				continue
			}
			calories += float64(w.TotalCaloriesBurned)
			progress += float64(w.ProgressPercentage)
			n++
		}
		pct := 0.0
		if n > 0 {
			pct = math.Round(progress / float64(n))
		}
		if calories > 0 && pct < minVisibleProgress {
			pct = minVisibleProgress
		}
		cal.Days = append(cal.Days, CalendarDay{
			Date:     d,
			Calories: calories,
			Progress: pct,
			Today:    d.Equal(Day(today)),
		})
		cal.Total += calories
	}
	cal.Average = average(cal.Total, len(days))
	return cal
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
