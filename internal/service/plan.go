package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/madDev-12/fitnutrition/internal/model"
)

const defaultPlanDurationDays = 7

var (
	ErrPlanConflict = errors.New("meal plan dates overlap an active plan")
	ErrInvalidRange = errors.New("invalid date range")
)

// planWindow parses a plan's bounds; ok is false when either bound is
// missing or unparseable.
func planWindow(p model.MealPlan) (time.Time, time.Time, bool) {
	if !p.HasWindow() {
		return time.Time{}, time.Time{}, false
	}
	rawStart, rawEnd := p.Window()
	start, err := ParseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := ParseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// ActivePlanFor returns the first plan, in list order, whose inclusive
// window contains date.
func ActivePlanFor(date time.Time, plans []model.MealPlan) (model.MealPlan, bool) {
	d := Day(date)
	for _, p := range plans {
		start, end, ok := planWindow(p)
		if !ok {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			return p, true
		}
	}
	return model.MealPlan{}, false
}

type PlanConflict struct {
	Plan         model.MealPlan
	OverlapStart time.Time
	OverlapEnd   time.Time
}

func (c *PlanConflict) Error() string {
	return fmt.Sprintf("%s: %q is active %s to %s", ErrPlanConflict, c.Plan.Name, FormatDate(c.OverlapStart), FormatDate(c.OverlapEnd))
}

func (c *PlanConflict) Unwrap() error {
	return ErrPlanConflict
}

// CheckPlanConflict reports the first plan (other than excludeID) whose window
// intersects [start, end], along with the intersection.
func CheckPlanConflict(start, end time.Time, plans []model.MealPlan, excludeID int64) *PlanConflict {
	start, end = Day(start), Day(end)
	for _, p := range plans {
		if excludeID != 0 && p.ID == excludeID {
			continue
		}
		existingStart, existingEnd, ok := planWindow(p)
		if !ok {
			continue
		}
		if !start.After(existingEnd) && !end.Before(existingStart) {
			return &PlanConflict{
				Plan:         p,
				OverlapStart: laterOf(start, existingStart),
				OverlapEnd:   earlierOf(end, existingEnd),
			}
		}
	}
	return nil
}

// DefaultActivationRange starts today and lasts duration_days (7 when unset).
func DefaultActivationRange(p model.MealPlan, today time.Time) (time.Time, time.Time) {
	days := p.DurationDays
	if days <= 0 {
		days = defaultPlanDurationDays
	}
	start := Day(today)
	return start, start.AddDate(0, 0, days-1)
}

// ValidateActivation runs every pre-request check for activating plan over
// [start, end] and returns the plan with its new window set.
func ValidateActivation(plan model.MealPlan, start, end time.Time, plans []model.MealPlan) (model.MealPlan, error) {
	if start.IsZero() || end.IsZero() {
		return plan, fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}
	start, end = Day(start), Day(end)
	if !end.After(start) {
		return plan, fmt.Errorf("%w: end date must be after start date", ErrInvalidRange)
	}
	if conflict := CheckPlanConflict(start, end, plans, plan.ID); conflict != nil {
		return plan, conflict
	}
	s, e := FormatDate(start), FormatDate(end)
	plan.StartDate = &s
	plan.EndDate = &e
	return plan, nil
}

// CancelActivation clears the plan's window.
func CancelActivation(plan model.MealPlan) model.MealPlan {
	plan.StartDate = nil
	plan.EndDate = nil
	return plan
}

// FilterPlans matches name, description or the calorie figure.
func FilterPlans(plans []model.MealPlan, term string) []model.MealPlan {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return plans
	}
	out := make([]model.MealPlan, 0, len(plans))
	for _, p := range plans {
		calories := strconv.FormatFloat(p.Calories(), 'f', -1, 64)
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(calories, term) {
			out = append(out, p)
		}
	}
	return out
}

// PlanByID finds a plan in a loaded list.
func PlanByID(plans []model.MealPlan, id int64) (model.MealPlan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return model.MealPlan{}, false
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
