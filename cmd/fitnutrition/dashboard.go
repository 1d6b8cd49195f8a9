package fitnutrition

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's summary, body metrics and the 7-day calendars",
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := selectedPlan()
		if err != nil {
			return err
		}
		view := service.NewDashboardLoader(newClient(), selected).Load(commandContext(cmd), service.Today())
		if view.Err != nil {
			log.Debugf("dashboard sections failed: %s", view.Err)
		}
		renderDashboard(cmd.OutOrStdout(), view, selected)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

type bodyMetrics struct {
	Weight service.Metric
	BMI    service.Metric
	BMR    service.Metric
	TDEE   service.Metric
}

// dashboardMetrics prefers backend metabolism figures and falls back to the
// configured profile.
func dashboardMetrics(view service.DashboardView) bodyMetrics {
	var m bodyMetrics
	height := settings.Profile.HeightCm
	if view.Latest != nil {
		m.Weight = service.MetricOf(view.Latest.Weight)
		if h := view.Latest.Height.Float(); h > 0 {
			height = h
		}
	}
	m.BMI = service.BMI(m.Weight.Value, height)
	if mb := view.Summary.Metabolism; mb != nil && mb.BMR.Float() > 0 {
		m.BMR = service.Metric{Value: mb.BMR.Float(), OK: true}
	} else {
		m.BMR = service.BMR(m.Weight.Value, height, settings.Profile.Age, settings.Profile.Gender)
	}
	if tdee := view.TDEE(); tdee > 0 {
		m.TDEE = service.Metric{Value: tdee, OK: true}
	} else {
		m.TDEE = service.TDEE(m.BMR, settings.Profile.ActivityLevel)
	}
	return m
}

func renderDashboard(w io.Writer, view service.DashboardView, selected *model.MealPlan) {
	if warn := view.Warnings(); len(warn) > 0 {
		fmt.Fprintf(w, "Warning: could not load %s\n\n", strings.Join(warn, ", "))
	}

	fmt.Fprintf(w, "Dashboard for %s\n", service.FormatDate(view.Today))
	if plan, ok := service.ActivePlanFor(view.Today, view.Plans); ok {
		fmt.Fprintf(w, "Active plan: %s\n", plan.Name)
	} else if selected != nil {
		fmt.Fprintf(w, "Selected plan: %s\n", selected.Name)
	}

	m := dashboardMetrics(view)
	fmt.Fprintln(w, "\nBody")
	fmt.Fprintf(w, "  Weight\t%s kg\n", m.Weight.Format(1, "N/A"))
	fmt.Fprintf(w, "  BMI\t%s %s\n", m.BMI.Format(1, "N/A"), service.BMICategory(m.BMI))
	fmt.Fprintf(w, "  BMR\t%s kcal\n", m.BMR.Format(0, "N/A"))
	fmt.Fprintf(w, "  TDEE\t%s kcal\n", m.TDEE.Format(0, "N/A"))

	targets := view.TodayTargets(selected)
	totals := service.DayTotals(view.TodayMeals)
	fmt.Fprintln(w, "\nToday")
	for _, row := range []struct {
		name           string
		actual, target float64
		unit           string
	}{
		{"Calories", totals.Calories, targets.Calories, "kcal"},
		{"Protein", totals.Protein, targets.Protein, "g"},
		{"Carbs", totals.Carbs, targets.Carbs, "g"},
		{"Fat", totals.Fats, targets.Fat, "g"},
	} {
		pct := service.ProgressPercent(row.actual, row.target)
		fmt.Fprintf(w, "  %-8s\t%s/%s %s\t%s %.0f%%\n", row.name, formatNumber(row.actual), formatNumber(row.target), row.unit, progressBar(pct, 20), pct)
	}

	stats := service.WeekWorkoutStats(view.WeekWorkouts)
	fmt.Fprintf(w, "\nWorkouts this week: %d/%d completed (%.0f%%)\n", stats.Completed, stats.Total, stats.Percent)

	if gp := view.Summary.GoalProgress; gp != nil {
		fmt.Fprintln(w, "\nGoal")
		fmt.Fprintf(w, "  Current\t%s kg\n", formatOptional(gp.CurrentWeight, 1))
		fmt.Fprintf(w, "  Target\t%s kg\n", formatOptional(gp.TargetWeight, 1))
		fmt.Fprintf(w, "  Remaining\t%s kg\n", formatOptional(gp.WeightRemaining, 1))
		fmt.Fprintf(w, "  Est. weeks\t%s\n", formatOptional(gp.EstimatedWeeksToGoal, 0))
	}
	if rp := view.Summary.RecentProgress; rp != nil {
		fmt.Fprintln(w, "\nRecent progress")
		fmt.Fprintf(w, "  Weight change\t%s kg\n", formatOptional(rp.WeightChange, 1))
		fmt.Fprintf(w, "  Body fat change\t%s %%\n", formatOptional(rp.BodyFatChange, 1))
		if rp.WorkoutTrends != nil {
			fmt.Fprintf(w, "  Workouts\t%d (%s min)\n", rp.WorkoutTrends.TotalWorkouts, formatNumber(float64(rp.WorkoutTrends.TotalDurationMinutes)))
		}
	}

	renderCalendar(w, "Calories eaten", view.Intake, true)
	renderCalendar(w, "Calories burned", view.Burned, false)
}

func renderCalendar(w io.Writer, title string, cal service.Calendar, withTarget bool) {
	fmt.Fprintf(w, "\n%s (total %s, avg %s kcal/day)\n", title, formatNumber(cal.Total), formatNumber(cal.Average))
	values := make([]float64, 0, len(cal.Days))
	for _, d := range cal.Days {
		values = append(values, d.Calories)
		marker := " "
		if d.Today {
			marker = "*"
		}
		amount := formatNumber(d.Calories)
		if withTarget {
			amount += "/" + formatNumber(d.Target)
		}
		fmt.Fprintf(w, " %s %s %s\t%s kcal\t%s %.0f%%\n", marker, d.Date.Format("Mon"), d.Date.Format("01-02"), amount, progressBar(d.Progress, 10), d.Progress)
	}
	fmt.Fprintf(w, "   trend %s\n", sparkline(values))
}
