package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/madDev-12/fitnutrition/internal/model"
)

type RepeatKind string

const (
	RepeatNone   RepeatKind = "none"
	RepeatDaily  RepeatKind = "daily"
	RepeatWeekly RepeatKind = "weekly"
)

func ParseRepeatKind(value string) (RepeatKind, error) {
	switch RepeatKind(strings.ToLower(strings.TrimSpace(value))) {
	case "", RepeatNone:
		return RepeatNone, nil
	case RepeatDaily:
		return RepeatDaily, nil
	case RepeatWeekly:
		return RepeatWeekly, nil
	default:
		return "", fmt.Errorf("invalid repeat %q (expected none|daily|weekly)", value)
	}
}

type MealLogRequest struct {
	MealType    string
	Date        time.Time
	Items       []model.MealItemInput
	Repeat      RepeatKind
	RepeatUntil time.Time
	WeeklyDays  []time.Weekday
}

func (r MealLogRequest) Validate(today time.Time) error {
	if len(r.Items) == 0 {
		return fmt.Errorf("select at least one food")
	}
	if !isMealType(r.MealType) {
		return fmt.Errorf("invalid meal type %q", r.MealType)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if Day(r.Date).Before(Day(today)) {
		return fmt.Errorf("cannot log meals for a past date")
	}
	for _, it := range r.Items {
		if it.FoodID <= 0 {
			return fmt.Errorf("invalid food id %d", it.FoodID)
		}
		if it.ServingSize <= 0 {
			return fmt.Errorf("serving size must be > 0")
		}
	}
	switch r.Repeat {
	case "", RepeatNone:
		return nil
	case RepeatDaily, RepeatWeekly:
	default:
		return fmt.Errorf("invalid repeat %q", r.Repeat)
	}
	if r.RepeatUntil.IsZero() {
		return fmt.Errorf("repeat end date is required when repeating")
	}
	if Day(r.RepeatUntil).Before(Day(r.Date)) {
		return fmt.Errorf("repeat end date must not be before the start date")
	}
	if r.Repeat == RepeatWeekly && len(r.WeeklyDays) == 0 {
		return fmt.Errorf("select at least one weekday for weekly repeat")
	}
	if len(r.Dates()) == 0 {
		return fmt.Errorf("no selected weekday falls between %s and %s", FormatDate(r.Date), FormatDate(r.RepeatUntil))
	}
	return nil
}

// Dates lists every date a meal is logged on.
func (r MealLogRequest) Dates() []time.Time {
	start := Day(r.Date)
	switch r.Repeat {
	case RepeatDaily:
		return DaysBetween(start, r.RepeatUntil)
	case RepeatWeekly:
		want := map[time.Weekday]bool{}
		for _, d := range r.WeeklyDays {
			want[d] = true
		}
		var out []time.Time
		for _, d := range DaysBetween(start, r.RepeatUntil) {
			if want[d.Weekday()] {
				out = append(out, d)
			}
		}
		return out
	default:
		return []time.Time{start}
	}
}

func (r MealLogRequest) Inputs() []model.MealInput {
	dates := r.Dates()
	out := make([]model.MealInput, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.MealInput{
			Name:     fmt.Sprintf("%s - %s", r.MealType, FormatDate(d)),
			MealType: r.MealType,
			Date:     FormatDate(d),
			Items:    r.Items,
		})
	}
	return out
}

type MealCreator interface {
	CreateMeal(ctx context.Context, in model.MealInput) (model.Meal, error)
}

// LogMeals creates every dated meal concurrently. Results keep date order.
func LogMeals(ctx context.Context, creator MealCreator, inputs []model.MealInput) ([]model.Meal, error) {
	out := make([]model.Meal, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, in := range inputs {
		g.Go(func() error {
			meal, err := creator.CreateMeal(gctx, in)
			if err != nil {
				return fmt.Errorf("create meal for %s: %w", in.Date, err)
			}
			out[i] = meal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseWeekdays accepts names (mon, tuesday) or 0-6 with 0 as Sunday.
func ParseWeekdays(values []string) ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
		"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	}
	var out []time.Weekday
	seen := map[time.Weekday]bool{}
	for _, raw := range values {
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" {
			continue
		}
		var day time.Weekday
		if len(v) == 1 && v[0] >= '0' && v[0] <= '6' {
			day = time.Weekday(v[0] - '0')
		} else if d, ok := names[v[:min(3, len(v))]]; ok {
			day = d
		} else {
			return nil, fmt.Errorf("invalid weekday %q", raw)
		}
		if !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}
	return out, nil
}

func isMealType(v string) bool {
	for _, t := range model.MealTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ParseMealType(value string) (string, error) {
	v := normalizeName(value)
	if !isMealType(v) {
		return "", fmt.Errorf("invalid meal type %q (expected breakfast|lunch|dinner|snack)", value)
	}
	return v, nil
}
